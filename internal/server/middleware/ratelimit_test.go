package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rl := NewRateLimiter(3, time.Minute, logger)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("client-a"), "request %d within the limit", i)
	}
	assert.False(t, rl.Allow("client-a"), "fourth request is rejected")

	// Keys are limited independently.
	assert.True(t, rl.Allow("client-b"))
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := RateLimitMiddleware(2, time.Minute, logger)(next)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/systems/push", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "remote addr only",
			remote:  "10.0.0.1:1234",
			want:    "10.0.0.1:1234",
			headers: nil,
		},
		{
			name:    "x-forwarded-for single",
			remote:  "10.0.0.1:1234",
			headers: map[string]string{"X-Forwarded-For": "192.168.1.5"},
			want:    "192.168.1.5",
		},
		{
			name:    "x-forwarded-for chain keeps first hop",
			remote:  "10.0.0.1:1234",
			headers: map[string]string{"X-Forwarded-For": "192.168.1.5, 172.16.0.1"},
			want:    "192.168.1.5",
		},
		{
			name:    "x-real-ip fallback",
			remote:  "10.0.0.1:1234",
			headers: map[string]string{"X-Real-IP": "192.168.1.9"},
			want:    "192.168.1.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}
