package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/treystu/bmsview-sync/internal/client/decision"
	"github.com/treystu/bmsview-sync/internal/client/reconcile"
	"github.com/treystu/bmsview-sync/internal/models"
)

// Decide compares local and server metadata for one collection and returns
// the bulk strategy, without executing it.
func (s *Service) Decide(ctx context.Context, collection string) (*models.SyncDecision, error) {
	serverMeta, err := s.transport.Metadata(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch server metadata: %w", err)
	}

	localMeta, err := s.cache.GetMetadata(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to compute local metadata: %w", err)
	}

	d := decision.Decide(localMeta, serverMeta)
	s.logger.Info("sync decision",
		"collection", collection,
		"action", d.Action,
		"reason", d.Reason,
		"local_count", d.LocalCount,
		"server_count", d.ServerCount)
	return &d, nil
}

// BulkSync runs the one-shot decision path for every collection, typically
// at application startup: decide a direction per collection and execute it.
func (s *Service) BulkSync(ctx context.Context) error {
	if !s.syncing.CompareAndSwap(false, true) {
		s.logger.Debug("sync cycle already in progress")
		return nil
	}
	defer s.syncing.Store(false)

	acquired, err := s.lease.TryAcquire()
	if err != nil {
		return fmt.Errorf("failed to acquire sync lease: %w", err)
	}
	if !acquired {
		s.logger.Debug("sync lease held by another process, skipping bulk sync")
		return nil
	}
	defer func() {
		if err := s.lease.Release(); err != nil {
			s.logger.Warn("failed to release sync lease", "error", err)
		}
	}()

	for _, collection := range s.cfg.Collections {
		d, err := s.Decide(ctx, collection)
		if err != nil {
			return fmt.Errorf("decide %s: %w", collection, err)
		}
		if err := s.applyDecision(ctx, collection, d); err != nil {
			return fmt.Errorf("apply %s for %s: %w", d.Action, collection, err)
		}
	}
	return nil
}

// applyDecision executes one bulk strategy for a collection.
func (s *Service) applyDecision(ctx context.Context, collection string, d *models.SyncDecision) error {
	switch d.Action {
	case models.ActionPull:
		return s.pullAll(ctx, collection)
	case models.ActionPush:
		return s.pushAll(ctx, collection)
	case models.ActionReconcile:
		return s.reconcileAll(ctx, collection)
	case models.ActionSkip:
		return nil
	default:
		return fmt.Errorf("unknown sync action %q", d.Action)
	}
}

// pullAll fetches the full collection and upserts it locally as synced.
func (s *Service) pullAll(ctx context.Context, collection string) error {
	resp, err := s.transport.Changes(ctx, collection, time.Time{})
	if err != nil {
		return fmt.Errorf("full pull failed: %w", err)
	}

	if len(resp.Items) > 0 {
		if err := s.cache.BulkPut(ctx, collection, toCachedRecords(resp.Items), models.StatusSynced); err != nil {
			return fmt.Errorf("failed to apply pulled records: %w", err)
		}
	}
	for _, id := range resp.DeletedIDs {
		if err := s.cache.Delete(ctx, collection, id); err != nil {
			return fmt.Errorf("failed to apply deletion %s: %w", id, err)
		}
	}

	if w := watermarkFor(resp); !w.IsZero() {
		if err := s.meta.SaveLastSync(ctx, collection, w); err != nil {
			return fmt.Errorf("failed to advance watermark: %w", err)
		}
	}

	if changed := len(resp.Items) + len(resp.DeletedIDs); changed > 0 {
		s.subs.emit(Event{Type: EventDataChanged, Collection: collection, Count: changed})
	}
	return nil
}

// pushAll submits the entire local collection as one batch and marks the
// acknowledged records synced. Records the server rejected keep their local
// version pending until a pull or reconcile replaces it.
func (s *Service) pushAll(ctx context.Context, collection string) error {
	records, err := s.cache.GetAll(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to load local records: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	resp, err := s.transport.Push(ctx, collection, stripSyncFields(records))
	if err != nil {
		return fmt.Errorf("push rejected: %w", err)
	}

	rejected := rejectedSet(resp)
	for _, record := range records {
		if _, lost := rejected[record.ID]; lost {
			continue
		}
		if err := s.cache.MarkSynced(ctx, collection, record.ID, resp.SyncedAt); err != nil {
			return fmt.Errorf("failed to mark %s synced: %w", record.ID, err)
		}
	}
	return nil
}

// reconcileAll performs the full bidirectional merge: both record sets plus
// the server tombstones reduce to one conflict-free set. Versions taken from
// the server land as synced; surviving local-side versions stay pending so
// the next cycle pushes them.
func (s *Service) reconcileAll(ctx context.Context, collection string) error {
	resp, err := s.transport.Changes(ctx, collection, time.Time{})
	if err != nil {
		return fmt.Errorf("full pull failed: %w", err)
	}

	local, err := s.cache.GetAll(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to load local records: %w", err)
	}

	serverRecords := toCachedRecords(resp.Items)
	result := reconcile.Reconcile(local, serverRecords, resp.DeletedIDs, s.cfg.ConflictThreshold)

	serverByID := make(map[string]*models.CachedRecord, len(serverRecords))
	for _, r := range serverRecords {
		serverByID[r.ID] = r
	}

	for _, merged := range result.Merged {
		// Only a version the server already holds lands synced. Everything
		// else, including a previously-synced local record that won the
		// merge, goes pending so the next cycle propagates it.
		status := models.StatusPending
		if sv, ok := serverByID[merged.ID]; ok && sv.UpdatedAt.Equal(merged.UpdatedAt) {
			status = models.StatusSynced
		}
		if err := s.cache.Put(ctx, collection, merged, status); err != nil {
			return fmt.Errorf("failed to store merged record %s: %w", merged.ID, err)
		}
	}

	// Tombstoned ids vanish from the merged set; drop any local copies too.
	for _, id := range resp.DeletedIDs {
		if err := s.cache.Delete(ctx, collection, id); err != nil {
			return fmt.Errorf("failed to apply deletion %s: %w", id, err)
		}
	}

	for _, c := range result.Conflicts {
		s.logger.Warn("reconciliation conflict",
			"collection", collection,
			"record_id", c.ID,
			"resolution", c.Resolution)
	}

	if w := watermarkFor(resp); !w.IsZero() {
		if err := s.meta.SaveLastSync(ctx, collection, w); err != nil {
			return fmt.Errorf("failed to advance watermark: %w", err)
		}
	}

	s.subs.emit(Event{Type: EventDataChanged, Collection: collection, Count: len(result.Merged)})
	return nil
}
