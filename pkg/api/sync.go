package api

import (
	"encoding/json"
	"time"
)

// Record represents one canonical record on the wire. The payload carries the
// domain fields (a system, a history entry, an analytics or weather row)
// opaquely; the sync protocol only cares about id and updatedAt.
type Record struct {
	UpdatedAt time.Time       `json:"updatedAt"`
	ID        string          `json:"id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// MetadataResponse is the server's answer to a collection metadata request.
// LastModified is the zero time when the collection is empty.
type MetadataResponse struct {
	LastModified time.Time `json:"lastModified"`
	ServerTime   time.Time `json:"serverTime"`
	Collection   string    `json:"collection"`
	Checksum     string    `json:"checksum,omitempty"`
	RecordCount  int       `json:"recordCount"`
}

// ChangesResponse carries incremental changes since a client watermark.
// The server guarantees a superset-safe result: duplicates are tolerated,
// omissions are not.
type ChangesResponse struct {
	ServerTime time.Time `json:"serverTime"`
	Items      []Record  `json:"items"`
	DeletedIDs []string  `json:"deletedIds"`
}

// PushRequest is one batch of records for a single collection.
type PushRequest struct {
	Items []Record `json:"items"`
}

// PushResponse acknowledges a push batch. SyncedAt is the server-confirmed
// timestamp the client must stamp onto the pushed records; Accepted counts
// records that actually replaced an older server version. RejectedIDs lists
// the records the server kept its own newer version of; the client must not
// stamp those and should leave them pending until a pull or reconcile brings
// the winning version down.
type PushResponse struct {
	SyncedAt    time.Time `json:"syncedAt"`
	Accepted    int       `json:"accepted"`
	RejectedIDs []string  `json:"rejectedIds,omitempty"`
}

// ErrorResponse is the JSON error body returned on non-2xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
