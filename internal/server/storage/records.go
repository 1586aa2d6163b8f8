package storage

import (
	"context"
	"time"

	"github.com/treystu/bmsview-sync/internal/models"
	"github.com/treystu/bmsview-sync/pkg/api"
)

// RecordStorage is the authoritative store behind the three sync endpoints.
type RecordStorage interface {
	// PushBatch upserts one batch with last-writer-wins semantics: an
	// incoming record replaces the stored version only when its updatedAt is
	// newer; records that lose the comparison are returned in rejectedIDs.
	// The syncedAt stamp is assigned inside the batch transaction so no
	// concurrent read can observe a server time later than a stamp it has
	// not seen the rows of. Accepted records are restamped with syncedAt on
	// both sides of the protocol so checksums converge. The batch is atomic:
	// on error nothing is stored.
	PushBatch(ctx context.Context, collection string, items []api.Record) (accepted int, rejectedIDs []string, syncedAt time.Time, err error)

	// ChangesSince returns live records updated after since and ids
	// tombstoned after since. The zero since returns everything. Results are
	// superset-safe at the watermark edge: the comparison is inclusive, so
	// duplicates are possible and omissions are not.
	ChangesSince(ctx context.Context, collection string, since time.Time) ([]api.Record, []string, error)

	// Metadata computes the collection digest over live records.
	Metadata(ctx context.Context, collection string) (*models.CollectionMetadata, error)

	// Delete tombstones a record so subsequent incremental pulls report it
	// in deletedIds. Deleting an absent id is not an error.
	Delete(ctx context.Context, collection, id string, at time.Time) error
}
