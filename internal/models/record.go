package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the canonical timestamp format for persisted and hashed
// timestamps. Fixed-width nanoseconds keep the encoded form lexically
// sortable, which the server storage relies on.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SyncStatus tracks whether a cached record has been acknowledged by the
// remote store.
type SyncStatus string

const (
	// StatusPending means the record exists locally and has not yet been
	// acknowledged by the remote store.
	StatusPending SyncStatus = "pending"
	// StatusSynced means the record matches a server-acknowledged version.
	StatusSynced SyncStatus = "synced"
	// StatusConflict is reserved for application code that wants to park a
	// record for manual review. The engine itself only moves records between
	// pending and synced.
	StatusConflict SyncStatus = "conflict"
)

// Collection names of the durable per-collection stores.
const (
	CollectionSystems   = "systems"
	CollectionHistory   = "history"
	CollectionAnalytics = "analytics"
	CollectionWeather   = "weather"
)

// Collections is the fixed set of synchronized collections.
var Collections = []string{
	CollectionSystems,
	CollectionHistory,
	CollectionAnalytics,
	CollectionWeather,
}

// IsCollection reports whether name is one of the known collections.
func IsCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

// CachedRecord is a copy of a canonical record plus sync metadata.
// UpdatedAt is the single source of ordering truth and must be UTC.
type CachedRecord struct {
	UpdatedAt  time.Time       `json:"updatedAt"`
	ID         string          `json:"id"`
	SyncStatus SyncStatus      `json:"_syncStatus"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// Validate checks the invariants every write path must hold: a non-empty id,
// a non-zero UpdatedAt, and a UTC timestamp. Non-UTC timestamps are rejected
// rather than silently converted because mixing clock origins breaks
// tie-breaking during reconciliation.
func (r *CachedRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record id is empty")
	}
	if r.UpdatedAt.IsZero() {
		return fmt.Errorf("record %s: updatedAt is zero", r.ID)
	}
	if _, offset := r.UpdatedAt.Zone(); offset != 0 {
		return fmt.Errorf("record %s: updatedAt must be UTC, got zone offset %d", r.ID, offset)
	}
	return nil
}

// IsNewerThan reports whether r was updated strictly after other.
func (r *CachedRecord) IsNewerThan(other *CachedRecord) bool {
	return r.UpdatedAt.After(other.UpdatedAt)
}

// Clone returns a deep copy of the record.
func (r *CachedRecord) Clone() *CachedRecord {
	payload := make(json.RawMessage, len(r.Payload))
	copy(payload, r.Payload)

	return &CachedRecord{
		ID:         r.ID,
		UpdatedAt:  r.UpdatedAt,
		SyncStatus: r.SyncStatus,
		Payload:    payload,
	}
}
