package storage

import (
	"context"
	"time"

	"github.com/treystu/bmsview-sync/internal/models"
)

//go:generate moq -out cache_mock.go . CacheStorage

// CacheStorage is the persistent per-collection local cache holding records
// tagged with sync metadata. All operations validate the collection name and
// return ErrCollectionUnknown for names outside the fixed set.
type CacheStorage interface {
	// GetAll returns every record in the collection, any sync status.
	GetAll(ctx context.Context, collection string) ([]*models.CachedRecord, error)

	// GetByID returns one record by id.
	// Returns ErrRecordNotFound if the record doesn't exist.
	GetByID(ctx context.Context, collection, id string) (*models.CachedRecord, error)

	// Put stores or replaces a record with the given sync status.
	// The record's UpdatedAt must be a non-zero UTC timestamp.
	Put(ctx context.Context, collection string, record *models.CachedRecord, status models.SyncStatus) error

	// BulkPut upserts a batch of records under one transaction with the given
	// sync status. Applying the same batch twice is idempotent.
	BulkPut(ctx context.Context, collection string, records []*models.CachedRecord, status models.SyncStatus) error

	// Delete removes a record by id. Deleting an absent id is not an error.
	Delete(ctx context.Context, collection, id string) error

	// MarkSynced transitions a record to synced after a push acknowledgment,
	// stamping UpdatedAt with the server-confirmed timestamp.
	MarkSynced(ctx context.Context, collection, id string, serverTime time.Time) error

	// GetPending returns all records awaiting push acknowledgment.
	GetPending(ctx context.Context, collection string) ([]*models.CachedRecord, error)

	// GetMetadata recomputes lastModified, recordCount and the checksum over
	// the full collection.
	GetMetadata(ctx context.Context, collection string) (*models.CollectionMetadata, error)

	// GetStaleItems returns records whose UpdatedAt is older than now minus
	// threshold, independent of sync status.
	GetStaleItems(ctx context.Context, collection string, threshold time.Duration) ([]*models.CachedRecord, error)

	// PurgeStaleItems destructively removes stale records and returns the
	// number purged. This is age-based garbage collection, distinct from
	// sync-driven deletion, and irreversible.
	PurgeStaleItems(ctx context.Context, collection string, threshold time.Duration) (int, error)
}

//go:generate moq -out meta_mock.go . MetadataStorage

// MetadataStorage persists the per-collection last-sync watermarks so
// restarts resume incremental pulls from the correct point.
type MetadataStorage interface {
	// LastSync returns the watermark of the last successfully applied pull
	// for the collection, or the zero time if none was recorded.
	LastSync(ctx context.Context, collection string) (time.Time, error)

	// SaveLastSync advances the collection's watermark.
	SaveLastSync(ctx context.Context, collection string, t time.Time) error
}
