package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/treystu/bmsview-sync/internal/client/api"
	"github.com/treystu/bmsview-sync/internal/client/lock"
	"github.com/treystu/bmsview-sync/internal/client/storage"
	"github.com/treystu/bmsview-sync/internal/client/storage/boltdb"
	syncsvc "github.com/treystu/bmsview-sync/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Sync server URL")
	authToken := flag.String("token", os.Getenv("BMSVIEW_SYNC_TOKEN"), "Bearer token for the sync server")
	dbPath := flag.String("db", "bmsview-sync.db", "Path to the local cache database")
	leaseDir := flag.String("lease-dir", ".", "Directory for the cross-process sync lease")
	interval := flag.Duration("interval", 0, "Sync interval (0 uses the default)")
	once := flag.Bool("once", false, "Run a single sync cycle and exit")
	bulk := flag.Bool("bulk", false, "Run a decision-driven bulk sync and exit")
	decide := flag.Bool("decide", false, "Print the sync decision per collection and exit")
	purgeStale := flag.Bool("purge-stale", false, "Purge stale local records and exit")
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := syncsvc.DefaultConfig()
	if *interval > 0 {
		cfg.Interval = *interval
	}

	// A broken cache degrades the agent to network-only mode instead of
	// refusing to start.
	var (
		cache storage.CacheStorage
		meta  storage.MetadataStorage
	)
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		logger.Warn("local cache unavailable, running without persistence", "error", err)
		noop := storage.NewNoop()
		cache, meta = noop, noop
	} else {
		cache, meta = boltStorage, boltStorage
		defer func() {
			if err := boltStorage.Close(); err != nil {
				logger.Error("failed to close cache database", "error", err)
			}
		}()
	}

	transport := api.NewClient(*serverURL, *authToken, cfg.RequestTimeout)
	lease := lock.NewFileLease(*leaseDir, cfg.LockTTL)

	svc := syncsvc.NewService(transport, cache, meta, lease, cfg, logger)

	switch {
	case *decide:
		for _, collection := range cfg.Collections {
			d, err := svc.Decide(ctx, collection)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("%-10s %-10s %s\n", collection, d.Action, d.Reason)
		}
	case *purgeStale:
		n, err := svc.PurgeStale(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Purged %d stale records\n", n)
	case *bulk:
		if err := svc.BulkSync(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *once:
		svc.SyncNow(ctx)
		if msg := svc.SyncError(); msg != "" {
			fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
			os.Exit(1)
		}
	default:
		svc.Run(ctx)
	}
}

func printVersion() {
	fmt.Printf("BMSView Sync Agent\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
