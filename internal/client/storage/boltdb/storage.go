package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/treystu/bmsview-sync/internal/client/storage"
	"github.com/treystu/bmsview-sync/internal/models"
)

// bucketMeta holds per-collection sync watermarks keyed by collection name.
var bucketMeta = []byte("meta")

// Storage represents the BoltDB-backed local cache: one bucket per
// collection plus a meta bucket for watermarks.
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance.
// dbPath is the path to the BoltDB database file.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets creates one bucket per collection and the meta bucket.
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, collection := range models.Collections {
			if _, err := tx.CreateBucketIfNotExists([]byte(collection)); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", collection, err)
			}
		}
		if _, err := tx.CreateBucketIfNotExists(bucketMeta); err != nil {
			return fmt.Errorf("failed to create meta bucket: %w", err)
		}
		return nil
	})
}

// collectionBucket resolves a collection bucket inside a transaction,
// rejecting names outside the fixed collection set.
func collectionBucket(tx *bbolt.Tx, collection string) (*bbolt.Bucket, error) {
	if !models.IsCollection(collection) {
		return nil, fmt.Errorf("%w: %s", storage.ErrCollectionUnknown, collection)
	}
	bucket := tx.Bucket([]byte(collection))
	if bucket == nil {
		return nil, fmt.Errorf("%s bucket not found", collection)
	}
	return bucket, nil
}
