package storage

import (
	"context"
	"time"

	"github.com/treystu/bmsview-sync/internal/models"
)

// Noop is the documented no-op cache implementation, selected at construction
// time when the durable store is unavailable (disabled, unsupported, or
// corrupt). With it installed the sync layer degrades to a network-only
// no-op and the rest of the application keeps functioning.
type Noop struct{}

var (
	_ CacheStorage    = (*Noop)(nil)
	_ MetadataStorage = (*Noop)(nil)
)

// NewNoop returns the no-op cache and metadata storage.
func NewNoop() *Noop { return &Noop{} }

func (*Noop) GetAll(context.Context, string) ([]*models.CachedRecord, error) { return nil, nil }

func (*Noop) GetByID(context.Context, string, string) (*models.CachedRecord, error) {
	return nil, ErrRecordNotFound
}

func (*Noop) Put(context.Context, string, *models.CachedRecord, models.SyncStatus) error { return nil }

func (*Noop) BulkPut(context.Context, string, []*models.CachedRecord, models.SyncStatus) error {
	return nil
}

func (*Noop) Delete(context.Context, string, string) error { return nil }

func (*Noop) MarkSynced(context.Context, string, string, time.Time) error { return nil }

func (*Noop) GetPending(context.Context, string) ([]*models.CachedRecord, error) { return nil, nil }

func (*Noop) GetMetadata(ctx context.Context, collection string) (*models.CollectionMetadata, error) {
	return models.ComputeMetadata(collection, nil), nil
}

func (*Noop) GetStaleItems(context.Context, string, time.Duration) ([]*models.CachedRecord, error) {
	return nil, nil
}

func (*Noop) PurgeStaleItems(context.Context, string, time.Duration) (int, error) { return 0, nil }

func (*Noop) LastSync(context.Context, string) (time.Time, error) { return time.Time{}, nil }

func (*Noop) SaveLastSync(context.Context, string, time.Time) error { return nil }
