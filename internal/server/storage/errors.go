package storage

import "errors"

// Common server storage errors
var (
	// ErrRecordNotFound indicates that no record exists under the given id
	ErrRecordNotFound = errors.New("record not found")

	// ErrCollectionUnknown indicates a collection name outside the fixed set
	ErrCollectionUnknown = errors.New("unknown collection")
)
