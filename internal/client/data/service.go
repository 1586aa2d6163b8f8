// Package data is the application-facing write path of the local cache.
// Every write lands as a pending record so the next sync cycle picks it up;
// the package never talks to the network itself.
package data

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/treystu/bmsview-sync/internal/client/storage"
	"github.com/treystu/bmsview-sync/internal/models"
)

// Service provides typed access to locally cached records.
type Service interface {
	// Save stores a payload under the given id, stamping the write time and
	// marking the record pending. An empty id gets a generated UUID; the
	// stored id is returned.
	Save(ctx context.Context, collection, id string, payload any) (string, error)

	// Get loads a record and unmarshals its payload into out.
	Get(ctx context.Context, collection, id string, out any) error

	// List returns every cached record of a collection.
	List(ctx context.Context, collection string) ([]*models.CachedRecord, error)

	// Remove drops a record from the local cache. Server-side deletion goes
	// through the sync API, not through this service.
	Remove(ctx context.Context, collection, id string) error
}

type service struct {
	cache storage.CacheStorage
	now   func() time.Time
}

// NewService creates a new local data service.
func NewService(cache storage.CacheStorage) Service {
	return &service{
		cache: cache,
		now:   time.Now,
	}
}

func (s *service) Save(ctx context.Context, collection, id string, payload any) (string, error) {
	if id == "" {
		id = uuid.New().String()
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	record := &models.CachedRecord{
		ID:        id,
		UpdatedAt: s.now().UTC(),
		Payload:   payloadJSON,
	}

	if err := s.cache.Put(ctx, collection, record, models.StatusPending); err != nil {
		return "", fmt.Errorf("failed to save record: %w", err)
	}

	return id, nil
}

func (s *service) Get(ctx context.Context, collection, id string, out any) error {
	record, err := s.cache.GetByID(ctx, collection, id)
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	if err := json.Unmarshal(record.Payload, out); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}

func (s *service) List(ctx context.Context, collection string) ([]*models.CachedRecord, error) {
	records, err := s.cache.GetAll(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

func (s *service) Remove(ctx context.Context, collection, id string) error {
	if err := s.cache.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
