package models

import (
	"encoding/hex"
	"sort"
	"time"

	"golang.org/x/crypto/blake2b"
)

// CollectionMetadata is a cheap full-collection integrity digest: the maximum
// updatedAt, the record count, and a checksum over every record's identity
// and version. It is recomputed on every read rather than maintained
// incrementally.
type CollectionMetadata struct {
	LastModified time.Time `json:"lastModified"`
	Collection   string    `json:"collection"`
	Checksum     string    `json:"checksum"`
	RecordCount  int       `json:"recordCount"`
}

// Checksum hashes the sorted id:updatedAt pairs of a record set with
// BLAKE2b-256. It changes if and only if some record's id or updatedAt
// changes; payload edits that do not bump updatedAt are invisible to it.
func Checksum(records []*CachedRecord) string {
	pairs := make([]string, 0, len(records))
	for _, r := range records {
		pairs = append(pairs, r.ID+":"+r.UpdatedAt.UTC().Format(TimeLayout))
	}
	sort.Strings(pairs)

	h, _ := blake2b.New256(nil)
	for _, p := range pairs {
		h.Write([]byte(p))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ComputeMetadata derives collection metadata from a full record set.
func ComputeMetadata(collection string, records []*CachedRecord) *CollectionMetadata {
	meta := &CollectionMetadata{
		Collection:  collection,
		RecordCount: len(records),
		Checksum:    Checksum(records),
	}
	for _, r := range records {
		if r.UpdatedAt.After(meta.LastModified) {
			meta.LastModified = r.UpdatedAt
		}
	}
	return meta
}
