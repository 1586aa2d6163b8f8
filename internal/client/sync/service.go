// Package sync implements the sync orchestrator: it schedules periodic
// synchronization, coordinates with concurrent processes through an expiring
// lease, pushes pending local records, applies incremental pulls, and emits
// lifecycle events. All failures are contained here; nothing in this package
// throws into UI code.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/treystu/bmsview-sync/internal/client/storage"
	"github.com/treystu/bmsview-sync/internal/models"
	"github.com/treystu/bmsview-sync/pkg/api"
)

//go:generate moq -out transport_mock.go . Transport

// Transport is the Remote Sync API surface the orchestrator depends on.
type Transport interface {
	// Metadata fetches collection metadata and the server clock.
	Metadata(ctx context.Context, collection string) (*api.MetadataResponse, error)

	// Changes fetches incremental changes since the given watermark.
	// A zero since requests the full collection.
	Changes(ctx context.Context, collection string, since time.Time) (*api.ChangesResponse, error)

	// Push submits one batch of records for a collection.
	Push(ctx context.Context, collection string, items []api.Record) (*api.PushResponse, error)
}

//go:generate moq -out lease_mock.go . Lease

// Lease is the cross-process mutual exclusion primitive. TryAcquire returns
// (false, nil) on contention, which is a normal skip condition.
type Lease interface {
	TryAcquire() (bool, error)
	Release() error
}

// Service is the sync orchestrator. It is explicitly constructed and owned
// by the application root; there is no shared global instance.
type Service struct {
	now       func() time.Time
	transport Transport
	cache     storage.CacheStorage
	meta      storage.MetadataStorage
	lease     Lease
	logger    *slog.Logger
	forceCh   chan struct{}
	lastErr   string
	cfg       Config
	subs      subscribers
	errMu     sync.Mutex
	syncing   atomic.Bool
}

// NewService creates a sync orchestrator. Zero fields of cfg fall back to
// the DefaultConfig values.
func NewService(transport Transport, cache storage.CacheStorage, meta storage.MetadataStorage, lease Lease, cfg Config, logger *slog.Logger) *Service {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = def.LockTTL
	}
	if cfg.ConflictThreshold <= 0 {
		cfg.ConflictThreshold = def.ConflictThreshold
	}
	if cfg.DriftThreshold <= 0 {
		cfg.DriftThreshold = def.DriftThreshold
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = def.StaleAfter
	}
	if len(cfg.Collections) == 0 {
		cfg.Collections = def.Collections
	}

	return &Service{
		transport: transport,
		cache:     cache,
		meta:      meta,
		lease:     lease,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		forceCh:   make(chan struct{}, 1),
	}
}

// Subscribe registers an event handler and returns its unsubscribe function.
// Consumers observe sync status without coupling to orchestrator state.
func (s *Service) Subscribe(handler func(Event)) func() {
	return s.subs.add(handler)
}

// SyncError returns the readable status string of the most recent cycle:
// empty when healthy, the failure message otherwise.
func (s *Service) SyncError() string {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.lastErr
}

func (s *Service) setError(msg string) {
	s.errMu.Lock()
	s.lastErr = msg
	s.errMu.Unlock()
}

// Run drives the periodic scheduler until ctx is cancelled. A failed cycle
// is retried unconditionally on the next tick; there is no backoff, since
// failures are expected transient and bounded by the next interval.
func (s *Service) Run(ctx context.Context) {
	s.logger.Info("sync scheduler started", "interval", s.cfg.Interval)

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sync scheduler stopped")
			return
		case <-s.forceCh:
			// Cancel the pending tick rather than running an extra cycle.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-timer.C:
		}

		s.SyncNow(ctx)
		timer.Reset(s.cfg.Interval)
	}
}

// ForceSyncNow reschedules the timer to fire immediately. It does not abort
// an in-flight cycle.
func (s *Service) ForceSyncNow() {
	select {
	case s.forceCh <- struct{}{}:
	default:
	}
}

// cycleState accumulates statistics for one sync cycle.
type cycleState struct {
	stats       Stats
	driftWarned bool
}

// SyncNow runs one push-then-pull cycle across all collections. Overlapping
// calls within the process are dropped by the single-flight guard; contention
// on the cross-process lease skips the cycle silently.
func (s *Service) SyncNow(ctx context.Context) {
	if !s.syncing.CompareAndSwap(false, true) {
		s.logger.Debug("sync cycle already in progress")
		return
	}
	defer s.syncing.Store(false)

	acquired, err := s.lease.TryAcquire()
	if err != nil {
		s.fail(fmt.Errorf("failed to acquire sync lease: %w", err))
		return
	}
	if !acquired {
		s.logger.Debug("sync lease held by another process, skipping cycle")
		return
	}
	// The lease is released on every path out of the cycle; TTL expiry is
	// the backstop if release itself fails.
	defer func() {
		if err := s.lease.Release(); err != nil {
			s.logger.Warn("failed to release sync lease", "error", err)
		}
	}()

	s.subs.emit(Event{Type: EventSyncStart})
	s.logger.Info("sync cycle started")

	start := s.now()
	cycle := &cycleState{}

	for _, collection := range s.cfg.Collections {
		if err := s.syncCollection(ctx, collection, cycle); err != nil {
			s.fail(fmt.Errorf("sync %s: %w", collection, err))
			return
		}
	}

	cycle.stats.Duration = s.now().Sub(start)
	s.setError("")
	s.subs.emit(Event{Type: EventSyncComplete, Stats: &cycle.stats})
	s.logger.Info("sync cycle completed",
		"pushed", cycle.stats.Pushed,
		"pulled", cycle.stats.Pulled,
		"deleted", cycle.stats.Deleted,
		"conflicts", cycle.stats.Conflicts,
		"duration", cycle.stats.Duration)
}

// fail contains a cycle failure: logged, surfaced as an event and a readable
// status string, never propagated to the scheduler.
func (s *Service) fail(err error) {
	s.logger.Error("sync cycle failed", "error", err)
	s.setError(err.Error())
	s.subs.emit(Event{Type: EventSyncError, Message: err.Error()})
}

// syncCollection pushes before pulling so freshly-written local state is not
// immediately overwritten by a stale pull.
func (s *Service) syncCollection(ctx context.Context, collection string, cycle *cycleState) error {
	if err := s.pushPending(ctx, collection, cycle); err != nil {
		return err
	}
	return s.pullChanges(ctx, collection, cycle)
}

// pushPending submits all pending records as one batch and marks them synced
// only after the acknowledgment, never optimistically. A rejected batch stays
// pending and is retried verbatim next cycle. Records the server rejected
// individually also stay pending: stamping them would freeze the stale local
// payload with a timestamp newer than the server's winner, putting it out of
// reach of incremental pulls.
func (s *Service) pushPending(ctx context.Context, collection string, cycle *cycleState) error {
	pending, err := s.cache.GetPending(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to load pending records: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	resp, err := s.transport.Push(ctx, collection, stripSyncFields(pending))
	if err != nil {
		return fmt.Errorf("push rejected: %w", err)
	}

	rejected := rejectedSet(resp)
	for _, record := range pending {
		if _, lost := rejected[record.ID]; lost {
			continue
		}
		if err := s.cache.MarkSynced(ctx, collection, record.ID, resp.SyncedAt); err != nil {
			return fmt.Errorf("failed to mark %s synced: %w", record.ID, err)
		}
	}

	cycle.stats.Pushed += len(pending) - len(rejected)
	cycle.stats.Conflicts += len(rejected)
	s.logger.Debug("pushed pending records",
		"collection", collection, "count", len(pending),
		"accepted", resp.Accepted, "rejected", len(rejected))
	return nil
}

// rejectedSet indexes the ids the server refused to overwrite.
func rejectedSet(resp *api.PushResponse) map[string]struct{} {
	rejected := make(map[string]struct{}, len(resp.RejectedIDs))
	for _, id := range resp.RejectedIDs {
		rejected[id] = struct{}{}
	}
	return rejected
}

// pullChanges applies incremental changes since the persisted watermark and
// advances the watermark only after successful application, keeping pulls
// retry-safe and idempotent.
func (s *Service) pullChanges(ctx context.Context, collection string, cycle *cycleState) error {
	since, err := s.meta.LastSync(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to load watermark: %w", err)
	}

	resp, err := s.transport.Changes(ctx, collection, since)
	if err != nil {
		return fmt.Errorf("incremental pull failed: %w", err)
	}

	if len(resp.Items) > 0 {
		if err := s.cache.BulkPut(ctx, collection, toCachedRecords(resp.Items), models.StatusSynced); err != nil {
			return fmt.Errorf("failed to apply pulled records: %w", err)
		}
		cycle.stats.Pulled += len(resp.Items)
	}

	for _, id := range resp.DeletedIDs {
		if err := s.cache.Delete(ctx, collection, id); err != nil {
			return fmt.Errorf("failed to apply deletion %s: %w", id, err)
		}
	}
	cycle.stats.Deleted += len(resp.DeletedIDs)

	if w := watermarkFor(resp); w.After(since) {
		if err := s.meta.SaveLastSync(ctx, collection, w); err != nil {
			return fmt.Errorf("failed to advance watermark: %w", err)
		}
	}

	if changed := len(resp.Items) + len(resp.DeletedIDs); changed > 0 {
		s.subs.emit(Event{Type: EventDataChanged, Collection: collection, Count: changed})
	}

	s.checkDrift(resp.ServerTime, cycle)
	return nil
}

// watermarkFor picks the next pull watermark: the server clock when reported
// (same origin as server-stamped records), otherwise the newest item seen.
// Wall-clock "now" is never used, so changes landing during the request are
// not dropped.
func watermarkFor(resp *api.ChangesResponse) time.Time {
	if !resp.ServerTime.IsZero() {
		return resp.ServerTime
	}
	var w time.Time
	for _, item := range resp.Items {
		if item.UpdatedAt.After(w) {
			w = item.UpdatedAt
		}
	}
	return w
}

// checkDrift surfaces client/server clock discrepancy as a warning event,
// at most once per cycle. Drift is informative, not fatal.
func (s *Service) checkDrift(serverTime time.Time, cycle *cycleState) {
	if serverTime.IsZero() || cycle.driftWarned {
		return
	}
	drift := s.now().Sub(serverTime)
	if drift < 0 {
		drift = -drift
	}
	if drift > s.cfg.DriftThreshold {
		cycle.driftWarned = true
		s.logger.Warn("clock drift detected", "drift", drift)
		s.subs.emit(Event{Type: EventDriftWarning, Drift: drift})
	}
}

// PurgeStale garbage-collects records older than the configured age across
// all collections. Destructive and irreversible; callers invoke it
// deliberately, it is not part of the periodic cycle.
func (s *Service) PurgeStale(ctx context.Context) (int, error) {
	total := 0
	for _, collection := range s.cfg.Collections {
		n, err := s.cache.PurgeStaleItems(ctx, collection, s.cfg.StaleAfter)
		if err != nil {
			return total, fmt.Errorf("purge %s: %w", collection, err)
		}
		if n > 0 {
			s.logger.Info("purged stale records", "collection", collection, "count", n)
		}
		total += n
	}
	return total, nil
}

// stripSyncFields converts cached records to wire records, dropping the
// sync-internal fields.
func stripSyncFields(records []*models.CachedRecord) []api.Record {
	items := make([]api.Record, 0, len(records))
	for _, r := range records {
		items = append(items, api.Record{
			ID:        r.ID,
			UpdatedAt: r.UpdatedAt,
			Payload:   r.Payload,
		})
	}
	return items
}

// toCachedRecords converts wire records to cache records, normalizing
// timestamps to UTC.
func toCachedRecords(items []api.Record) []*models.CachedRecord {
	records := make([]*models.CachedRecord, 0, len(items))
	for _, item := range items {
		records = append(records, &models.CachedRecord{
			ID:        item.ID,
			UpdatedAt: item.UpdatedAt.UTC(),
			Payload:   item.Payload,
		})
	}
	return records
}
