package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/treystu/bmsview-sync/internal/server/handlers"
	"github.com/treystu/bmsview-sync/internal/server/middleware"
	"github.com/treystu/bmsview-sync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "Listen address")
	dbPath := flag.String("db", "bmsview-sync-server.db", "Path to the SQLite database")
	secret := flag.String("secret", os.Getenv("BMSVIEW_SYNC_SECRET"), "JWT signing secret")
	tokenTTL := flag.Duration("token-ttl", 30*24*time.Hour, "Access token lifetime")
	issueToken := flag.String("issue-token", "", "Issue a token for device:agent and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: JWT secret is required (-secret or BMSVIEW_SYNC_SECRET)")
		os.Exit(1)
	}

	jwtCfg := handlers.JWTConfig{
		Secret:         []byte(*secret),
		AccessTokenTTL: *tokenTTL,
	}

	if *issueToken != "" {
		deviceID, agentName, ok := strings.Cut(*issueToken, ":")
		if !ok || deviceID == "" || agentName == "" {
			fmt.Fprintln(os.Stderr, "Error: -issue-token expects device:agent")
			os.Exit(1)
		}
		token, expiresIn, err := handlers.GenerateAccessToken(jwtCfg, deviceID, agentName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s\n", token)
		fmt.Fprintf(os.Stderr, "Expires in %d seconds\n", expiresIn)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	syncHandler := handlers.NewSyncHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, Version)

	auth := middleware.AuthMiddleware(logger, jwtCfg)
	pushLimit := middleware.RateLimitMiddleware(60, time.Minute, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	mux.Handle("GET /api/v1/sync/{collection}/metadata", auth(http.HandlerFunc(syncHandler.Metadata)))
	mux.Handle("GET /api/v1/sync/{collection}/changes", auth(http.HandlerFunc(syncHandler.Changes)))
	mux.Handle("POST /api/v1/sync/{collection}/push", auth(pushLimit(http.HandlerFunc(syncHandler.Push))))
	mux.Handle("DELETE /api/v1/sync/{collection}/{id}", auth(http.HandlerFunc(syncHandler.Delete)))

	handler := middleware.RecoveryMiddleware(logger)(
		middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(mux),
	)

	server := &http.Server{
		Addr:              *addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("sync server listening", "addr", *addr, "version", Version)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("sync server stopped")
}

func printVersion() {
	fmt.Printf("BMSView Sync Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
