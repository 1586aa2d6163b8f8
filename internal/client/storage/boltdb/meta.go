package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/treystu/bmsview-sync/internal/client/storage"
	"github.com/treystu/bmsview-sync/internal/models"
)

var _ storage.MetadataStorage = (*Storage)(nil)

// lastSyncKey is the meta bucket key holding a collection's pull watermark.
func lastSyncKey(collection string) []byte {
	return []byte("lastsync:" + collection)
}

// LastSync returns the watermark of the last successfully applied pull for
// the collection, or the zero time if none was recorded.
func (s *Storage) LastSync(ctx context.Context, collection string) (time.Time, error) {
	if s.db == nil {
		return time.Time{}, storage.ErrStorageClosed
	}
	if !models.IsCollection(collection) {
		return time.Time{}, fmt.Errorf("%w: %s", storage.ErrCollectionUnknown, collection)
	}

	var last time.Time

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}

		data := bucket.Get(lastSyncKey(collection))
		if data == nil {
			return nil
		}

		t, err := time.Parse(models.TimeLayout, string(data))
		if err != nil {
			return fmt.Errorf("failed to parse last sync timestamp: %w", err)
		}
		last = t
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}

	return last, nil
}

// SaveLastSync advances the collection's watermark.
func (s *Storage) SaveLastSync(ctx context.Context, collection string, t time.Time) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if !models.IsCollection(collection) {
		return fmt.Errorf("%w: %s", storage.ErrCollectionUnknown, collection)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}

		value := t.UTC().Format(models.TimeLayout)
		if err := bucket.Put(lastSyncKey(collection), []byte(value)); err != nil {
			return fmt.Errorf("failed to save last sync timestamp: %w", err)
		}
		return nil
	})
}
