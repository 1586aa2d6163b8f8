package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treystu/bmsview-sync/internal/models"
	"github.com/treystu/bmsview-sync/pkg/api"
)

func TestDecide(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	cache := quietCache()
	cache.GetMetadataFunc = func(ctx context.Context, collection string) (*models.CollectionMetadata, error) {
		return &models.CollectionMetadata{Collection: collection}, nil
	}

	transport := &TransportMock{
		MetadataFunc: func(ctx context.Context, collection string) (*api.MetadataResponse, error) {
			return &api.MetadataResponse{
				Collection:   collection,
				RecordCount:  4,
				LastModified: now,
				ServerTime:   now,
			}, nil
		},
	}

	svc := NewService(transport, cache, zeroWatermarks(), grantedLease(), testConfig(), testLogger)

	d, err := svc.Decide(context.Background(), models.CollectionSystems)
	require.NoError(t, err)
	assert.Equal(t, models.ActionPull, d.Action)
	assert.Equal(t, 0, d.LocalCount)
	assert.Equal(t, 4, d.ServerCount)
}

func TestBulkSync_PullPath(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	cache := quietCache()
	cache.GetMetadataFunc = func(ctx context.Context, collection string) (*models.CollectionMetadata, error) {
		return &models.CollectionMetadata{Collection: collection}, nil
	}

	transport := &TransportMock{
		MetadataFunc: func(ctx context.Context, collection string) (*api.MetadataResponse, error) {
			return &api.MetadataResponse{Collection: collection, RecordCount: 1, LastModified: now}, nil
		},
		ChangesFunc: func(ctx context.Context, collection string, since time.Time) (*api.ChangesResponse, error) {
			assert.True(t, since.IsZero(), "bulk pull requests the full collection")
			return &api.ChangesResponse{
				ServerTime: now,
				Items:      []api.Record{{ID: "a", UpdatedAt: now}},
			}, nil
		},
	}

	meta := zeroWatermarks()

	svc := NewService(transport, cache, meta, grantedLease(), testConfig(), testLogger)
	require.NoError(t, svc.BulkSync(context.Background()))

	require.Len(t, cache.BulkPutCalls(), 1)
	assert.Equal(t, models.StatusSynced, cache.BulkPutCalls()[0].Status)
	require.Len(t, meta.SaveLastSyncCalls(), 1)
	assert.True(t, meta.SaveLastSyncCalls()[0].T.Equal(now))
}

func TestBulkSync_PushPath(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	serverTime := now.Add(time.Second)

	local := []*models.CachedRecord{
		{ID: "a", UpdatedAt: now, SyncStatus: models.StatusPending},
		{ID: "b", UpdatedAt: now, SyncStatus: models.StatusSynced},
	}

	cache := quietCache()
	cache.GetMetadataFunc = func(ctx context.Context, collection string) (*models.CollectionMetadata, error) {
		return models.ComputeMetadata(collection, local), nil
	}
	cache.GetAllFunc = func(ctx context.Context, collection string) ([]*models.CachedRecord, error) {
		return local, nil
	}

	transport := &TransportMock{
		MetadataFunc: func(ctx context.Context, collection string) (*api.MetadataResponse, error) {
			return &api.MetadataResponse{Collection: collection}, nil
		},
		PushFunc: func(ctx context.Context, collection string, items []api.Record) (*api.PushResponse, error) {
			assert.Len(t, items, 2, "bulk push sends the whole collection")
			return &api.PushResponse{SyncedAt: serverTime, Accepted: 2}, nil
		},
	}

	svc := NewService(transport, cache, zeroWatermarks(), grantedLease(), testConfig(), testLogger)
	require.NoError(t, svc.BulkSync(context.Background()))

	require.Len(t, cache.MarkSyncedCalls(), 2)
	for _, call := range cache.MarkSyncedCalls() {
		assert.True(t, call.ServerTime.Equal(serverTime))
	}
}

func TestBulkSync_PushPath_RejectedRecordsNotStamped(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	serverTime := now.Add(time.Second)

	local := []*models.CachedRecord{
		{ID: "won", UpdatedAt: now, SyncStatus: models.StatusPending},
		{ID: "lost", UpdatedAt: now, SyncStatus: models.StatusPending},
	}

	cache := quietCache()
	cache.GetMetadataFunc = func(ctx context.Context, collection string) (*models.CollectionMetadata, error) {
		return models.ComputeMetadata(collection, local), nil
	}
	cache.GetAllFunc = func(ctx context.Context, collection string) ([]*models.CachedRecord, error) {
		return local, nil
	}

	transport := &TransportMock{
		MetadataFunc: func(ctx context.Context, collection string) (*api.MetadataResponse, error) {
			return &api.MetadataResponse{Collection: collection}, nil
		},
		PushFunc: func(ctx context.Context, collection string, items []api.Record) (*api.PushResponse, error) {
			return &api.PushResponse{
				SyncedAt:    serverTime,
				Accepted:    1,
				RejectedIDs: []string{"lost"},
			}, nil
		},
	}

	svc := NewService(transport, cache, zeroWatermarks(), grantedLease(), testConfig(), testLogger)
	require.NoError(t, svc.BulkSync(context.Background()))

	require.Len(t, cache.MarkSyncedCalls(), 1)
	assert.Equal(t, "won", cache.MarkSyncedCalls()[0].ID)
}

func TestBulkSync_ReconcilePath(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	// Both sides have records but no usable timestamps in metadata, which
	// forces the full merge.
	local := []*models.CachedRecord{
		{ID: "local-only", UpdatedAt: now, SyncStatus: models.StatusPending},
		{ID: "shared", UpdatedAt: now.Add(10 * time.Second), SyncStatus: models.StatusSynced},
		{ID: "dead", UpdatedAt: now, SyncStatus: models.StatusSynced},
	}
	serverItems := []api.Record{
		{ID: "shared", UpdatedAt: now},
		{ID: "server-only", UpdatedAt: now},
	}

	cache := quietCache()
	cache.GetMetadataFunc = func(ctx context.Context, collection string) (*models.CollectionMetadata, error) {
		return &models.CollectionMetadata{Collection: collection, RecordCount: len(local)}, nil
	}
	cache.GetAllFunc = func(ctx context.Context, collection string) ([]*models.CachedRecord, error) {
		return local, nil
	}

	puts := map[string]models.SyncStatus{}
	cache.PutFunc = func(ctx context.Context, collection string, record *models.CachedRecord, status models.SyncStatus) error {
		puts[record.ID] = status
		return nil
	}

	transport := &TransportMock{
		MetadataFunc: func(ctx context.Context, collection string) (*api.MetadataResponse, error) {
			return &api.MetadataResponse{Collection: collection, RecordCount: len(serverItems)}, nil
		},
		ChangesFunc: func(ctx context.Context, collection string, since time.Time) (*api.ChangesResponse, error) {
			return &api.ChangesResponse{
				ServerTime: now,
				Items:      serverItems,
				DeletedIDs: []string{"dead"},
			}, nil
		},
	}

	svc := NewService(transport, cache, zeroWatermarks(), grantedLease(), testConfig(), testLogger)
	require.NoError(t, svc.BulkSync(context.Background()))

	// Server-sourced versions land synced, surviving local versions stay
	// pending so the next cycle pushes them. A local winner that was synced
	// before the merge is no exception: leaving it synced would strand the
	// server on its older version.
	assert.Equal(t, models.StatusSynced, puts["server-only"])
	assert.Equal(t, models.StatusPending, puts["shared"], "local version won by timestamp")
	assert.Equal(t, models.StatusPending, puts["local-only"])
	assert.NotContains(t, puts, "dead", "tombstoned ids never reappear")

	require.Len(t, cache.DeleteCalls(), 1)
	assert.Equal(t, "dead", cache.DeleteCalls()[0].ID)
}

func TestBulkSync_SkipPath(t *testing.T) {
	cache := quietCache()
	cache.GetMetadataFunc = func(ctx context.Context, collection string) (*models.CollectionMetadata, error) {
		return &models.CollectionMetadata{Collection: collection}, nil
	}

	transport := &TransportMock{
		MetadataFunc: func(ctx context.Context, collection string) (*api.MetadataResponse, error) {
			return &api.MetadataResponse{Collection: collection}, nil
		},
	}

	svc := NewService(transport, cache, zeroWatermarks(), grantedLease(), testConfig(), testLogger)
	require.NoError(t, svc.BulkSync(context.Background()))

	assert.Empty(t, transport.ChangesCalls())
	assert.Empty(t, transport.PushCalls())
}
