package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/treystu/bmsview-sync/internal/server/handlers"
)

// AuthMiddleware validates the bearer token and puts the agent identity
// into the request context.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header")
				http.Error(w, "Unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			// Expected format: "Bearer <token>".
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("invalid Authorization header format")
				http.Error(w, "Unauthorized: invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, parts[1])
			if err != nil {
				logger.Warn("invalid access token", "error", err)
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.DeviceIDKey, claims.DeviceID)
			ctx = context.WithValue(ctx, handlers.AgentNameKey, claims.AgentName)

			logger.Debug("agent authenticated", "device_id", claims.DeviceID, "agent", claims.AgentName)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
