package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	a := &CachedRecord{ID: "a", UpdatedAt: base}
	b := &CachedRecord{ID: "b", UpdatedAt: base.Add(time.Minute)}

	t.Run("order independent", func(t *testing.T) {
		assert.Equal(t,
			Checksum([]*CachedRecord{a, b}),
			Checksum([]*CachedRecord{b, a}))
	})

	t.Run("changes with updatedAt", func(t *testing.T) {
		bumped := &CachedRecord{ID: "a", UpdatedAt: base.Add(time.Second)}
		assert.NotEqual(t,
			Checksum([]*CachedRecord{a, b}),
			Checksum([]*CachedRecord{bumped, b}))
	})

	t.Run("changes with id", func(t *testing.T) {
		renamed := &CachedRecord{ID: "c", UpdatedAt: base}
		assert.NotEqual(t,
			Checksum([]*CachedRecord{a}),
			Checksum([]*CachedRecord{renamed}))
	})

	t.Run("payload invisible", func(t *testing.T) {
		withPayload := &CachedRecord{ID: "a", UpdatedAt: base, Payload: []byte(`{"x":1}`)}
		assert.Equal(t,
			Checksum([]*CachedRecord{a}),
			Checksum([]*CachedRecord{withPayload}))
	})

	t.Run("empty set is stable", func(t *testing.T) {
		assert.Equal(t, Checksum(nil), Checksum([]*CachedRecord{}))
	})
}

func TestComputeMetadata(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	records := []*CachedRecord{
		{ID: "a", UpdatedAt: base},
		{ID: "b", UpdatedAt: base.Add(time.Hour)},
		{ID: "c", UpdatedAt: base.Add(time.Minute)},
	}

	meta := ComputeMetadata(CollectionSystems, records)

	assert.Equal(t, CollectionSystems, meta.Collection)
	assert.Equal(t, 3, meta.RecordCount)
	assert.True(t, meta.LastModified.Equal(base.Add(time.Hour)))
	assert.Equal(t, Checksum(records), meta.Checksum)

	t.Run("empty collection", func(t *testing.T) {
		meta := ComputeMetadata(CollectionWeather, nil)
		assert.Equal(t, 0, meta.RecordCount)
		assert.True(t, meta.LastModified.IsZero())
	})
}
