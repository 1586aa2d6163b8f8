package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/systems/metadata", nil)
	w := httptest.NewRecorder()

	LoggingMiddleware(logger)(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)

	out := buf.String()
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "/api/v1/sync/systems/metadata")
	assert.Contains(t, out, "level=WARN", "4xx responses log at warn level")
}

func TestLoggingMiddleware_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	LoggingMiddleware(logger)(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestLoggingWithSkip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mw := LoggingWithSkip(logger, []string{"/api/v1/health"})(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	mw.ServeHTTP(httptest.NewRecorder(), req)
	assert.Empty(t, buf.String(), "health checks are not logged")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/sync/systems/metadata", nil)
	mw.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEmpty(t, buf.String())
}
