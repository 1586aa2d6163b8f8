package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/treystu/bmsview-sync/internal/models"
	"github.com/treystu/bmsview-sync/internal/server/storage"
	"github.com/treystu/bmsview-sync/pkg/api"
)

var _ storage.RecordStorage = (*Storage)(nil)

// PushBatch upserts one batch with last-writer-wins semantics inside a
// single transaction. Records that lose against the stored stamp come back
// in rejectedIDs so the client keeps them pending instead of freezing a
// stale payload as synced. Accepted records are restamped with syncedAt so
// the stored timestamp matches the one the client stamps after the ack,
// keeping the two checksums convergent. Re-submitting an already-accepted
// batch is harmless: the stale incoming timestamps simply lose the
// comparison.
//
// The syncedAt stamp is taken after BeginTx. The pool is capped at one
// connection, so every read that could observe a later server time runs
// after this transaction commits and sees the stamped rows.
func (s *Storage) PushBatch(ctx context.Context, collection string, items []api.Record) (int, []string, time.Time, error) {
	if !models.IsCollection(collection) {
		return 0, nil, time.Time{}, fmt.Errorf("%w: %s", storage.ErrCollectionUnknown, collection)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, time.Time{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	syncedAt := s.now().UTC()
	stamp := syncedAt.Format(models.TimeLayout)
	accepted := 0
	var rejected []string

	for _, item := range items {
		var existing string
		err := tx.QueryRowContext(ctx,
			`SELECT updated_at FROM records WHERE collection = ? AND id = ?`,
			collection, item.ID,
		).Scan(&existing)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			// New record.
		case err != nil:
			return 0, nil, time.Time{}, fmt.Errorf("failed to check existing record: %w", err)
		default:
			stored, parseErr := time.Parse(models.TimeLayout, existing)
			if parseErr != nil {
				return 0, nil, time.Time{}, fmt.Errorf("failed to parse stored timestamp: %w", parseErr)
			}
			if !item.UpdatedAt.After(stored) {
				// Existing version is newer; the incoming one loses.
				rejected = append(rejected, item.ID)
				continue
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO records (collection, id, payload, updated_at, deleted, deleted_at)
			VALUES (?, ?, ?, ?, 0, NULL)
			ON CONFLICT (collection, id) DO UPDATE SET
				payload = excluded.payload,
				updated_at = excluded.updated_at,
				deleted = 0,
				deleted_at = NULL`,
			collection, item.ID, []byte(item.Payload), stamp,
		)
		if err != nil {
			return 0, nil, time.Time{}, fmt.Errorf("failed to upsert record %s: %w", item.ID, err)
		}
		accepted++
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, time.Time{}, fmt.Errorf("failed to commit push batch: %w", err)
	}

	return accepted, rejected, syncedAt, nil
}

// ChangesSince returns live records updated at or after since plus ids
// tombstoned at or after since. The inclusive comparison makes the result
// superset-safe at the watermark edge: a duplicate is possible, an omission
// is not. The zero since returns the full collection.
func (s *Storage) ChangesSince(ctx context.Context, collection string, since time.Time) ([]api.Record, []string, error) {
	if !models.IsCollection(collection) {
		return nil, nil, fmt.Errorf("%w: %s", storage.ErrCollectionUnknown, collection)
	}

	sinceStamp := ""
	if !since.IsZero() {
		sinceStamp = since.UTC().Format(models.TimeLayout)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, payload, updated_at
		FROM records
		WHERE collection = ? AND deleted = 0 AND (? = '' OR updated_at >= ?)
		ORDER BY updated_at`,
		collection, sinceStamp, sinceStamp,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query changed records: %w", err)
	}
	defer rows.Close()

	var items []api.Record
	for rows.Next() {
		var (
			item    api.Record
			payload []byte
			stamp   string
		)
		if err := rows.Scan(&item.ID, &payload, &stamp); err != nil {
			return nil, nil, fmt.Errorf("failed to scan record: %w", err)
		}
		item.UpdatedAt, err = time.Parse(models.TimeLayout, stamp)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse stored timestamp: %w", err)
		}
		item.Payload = payload
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate changed records: %w", err)
	}

	deletedRows, err := s.db.QueryContext(ctx, `
		SELECT id
		FROM records
		WHERE collection = ? AND deleted = 1 AND (? = '' OR deleted_at >= ?)
		ORDER BY id`,
		collection, sinceStamp, sinceStamp,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query tombstones: %w", err)
	}
	defer deletedRows.Close()

	var deletedIDs []string
	for deletedRows.Next() {
		var id string
		if err := deletedRows.Scan(&id); err != nil {
			return nil, nil, fmt.Errorf("failed to scan tombstone: %w", err)
		}
		deletedIDs = append(deletedIDs, id)
	}
	if err := deletedRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate tombstones: %w", err)
	}

	return items, deletedIDs, nil
}

// Metadata computes the collection digest over live records.
func (s *Storage) Metadata(ctx context.Context, collection string) (*models.CollectionMetadata, error) {
	if !models.IsCollection(collection) {
		return nil, fmt.Errorf("%w: %s", storage.ErrCollectionUnknown, collection)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, updated_at
		FROM records
		WHERE collection = ? AND deleted = 0`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []*models.CachedRecord
	for rows.Next() {
		var (
			id    string
			stamp string
		)
		if err := rows.Scan(&id, &stamp); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		updatedAt, err := time.Parse(models.TimeLayout, stamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored timestamp: %w", err)
		}
		records = append(records, &models.CachedRecord{ID: id, UpdatedAt: updatedAt})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return models.ComputeMetadata(collection, records), nil
}

// Delete tombstones a record. Deleting an absent id writes a bare tombstone
// so the deletion still propagates to clients that may hold a local copy.
func (s *Storage) Delete(ctx context.Context, collection, id string, at time.Time) error {
	if !models.IsCollection(collection) {
		return fmt.Errorf("%w: %s", storage.ErrCollectionUnknown, collection)
	}

	stamp := at.UTC().Format(models.TimeLayout)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (collection, id, payload, updated_at, deleted, deleted_at)
		VALUES (?, ?, NULL, ?, 1, ?)
		ON CONFLICT (collection, id) DO UPDATE SET
			deleted = 1,
			deleted_at = excluded.deleted_at`,
		collection, id, stamp, stamp,
	)
	if err != nil {
		return fmt.Errorf("failed to tombstone record %s: %w", id, err)
	}
	return nil
}
