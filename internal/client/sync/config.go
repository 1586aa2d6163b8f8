package sync

import (
	"time"

	"github.com/treystu/bmsview-sync/internal/models"
)

// Config gathers the orchestrator's tunables, injected at construction so
// tests can shrink the windows.
type Config struct {
	// Interval between periodic sync cycles.
	Interval time.Duration

	// LockTTL is the cross-process lease lifetime; an older lease is treated
	// as abandoned.
	LockTTL time.Duration

	// ConflictThreshold is the timestamp sensitivity below which divergent
	// versions are resolved silently (clock skew noise).
	ConflictThreshold time.Duration

	// DriftThreshold is the client/server wall-clock discrepancy that
	// triggers a drift warning event.
	DriftThreshold time.Duration

	// RequestTimeout bounds every remote call.
	RequestTimeout time.Duration

	// StaleAfter is the age past which PurgeStale garbage-collects local
	// records, independent of sync status.
	StaleAfter time.Duration

	// Collections to synchronize, in cycle order.
	Collections []string
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		Interval:          90 * time.Second,
		LockTTL:           10 * time.Second,
		ConflictThreshold: 1000 * time.Millisecond,
		DriftThreshold:    60 * time.Second,
		RequestTimeout:    30 * time.Second,
		StaleAfter:        30 * 24 * time.Hour,
		Collections:       models.Collections,
	}
}
