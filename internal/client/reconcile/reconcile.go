// Package reconcile merges two divergent record sets plus a deletion
// tombstone set into one conflict-free set at whole-record granularity.
package reconcile

import (
	"sort"
	"time"

	"github.com/treystu/bmsview-sync/internal/models"
)

// DefaultConflictThreshold absorbs clock skew noise: timestamp differences at
// or below it are resolved silently without a conflict report.
const DefaultConflictThreshold = 1000 * time.Millisecond

// Result is the outcome of a reconciliation. Merged contains at most one
// entry per id; every Conflicts entry references the two competing versions
// and the resolution that was applied.
type Result struct {
	Merged    []*models.CachedRecord
	Conflicts []models.Conflict
}

// Reconcile merges local and server record sets under last-writer-wins rules:
//
//   - any id in the tombstone set is dropped entirely, regardless of any
//     timestamp: deletions are terminal. This discards even a local edit made
//     after the server deletion was issued; that race is a known product-level
//     decision, not an oversight.
//   - ids present on one side only pass through unchanged.
//   - ids present on both sides keep the version with the greater timestamp;
//     the server version wins exact ties. A conflict is recorded whenever the
//     two timestamps differ by more than conflictThreshold.
//
// A non-positive conflictThreshold falls back to DefaultConflictThreshold.
// Merged output is sorted by id for determinism.
func Reconcile(local, server []*models.CachedRecord, serverDeletedIDs []string, conflictThreshold time.Duration) Result {
	if conflictThreshold <= 0 {
		conflictThreshold = DefaultConflictThreshold
	}

	tombstones := make(map[string]struct{}, len(serverDeletedIDs))
	for _, id := range serverDeletedIDs {
		tombstones[id] = struct{}{}
	}

	localByID := make(map[string]*models.CachedRecord, len(local))
	for _, r := range local {
		localByID[r.ID] = r
	}

	var result Result

	for _, sv := range server {
		if _, dead := tombstones[sv.ID]; dead {
			continue
		}

		lv, both := localByID[sv.ID]
		if !both {
			result.Merged = append(result.Merged, sv)
			continue
		}

		winner := sv
		resolution := models.ResolutionServerWon
		if lv.IsNewerThan(sv) {
			winner = lv
			resolution = models.ResolutionLocalWon
		}
		result.Merged = append(result.Merged, winner)

		diff := sv.UpdatedAt.Sub(lv.UpdatedAt)
		if diff < 0 {
			diff = -diff
		}
		if diff > conflictThreshold {
			result.Conflicts = append(result.Conflicts, models.Conflict{
				ID:         sv.ID,
				Local:      lv,
				Server:     sv,
				Resolution: resolution,
			})
		}
	}

	// Client-only records not yet known to the server, unless tombstoned.
	serverByID := make(map[string]struct{}, len(server))
	for _, r := range server {
		serverByID[r.ID] = struct{}{}
	}
	for _, lv := range local {
		if _, seen := serverByID[lv.ID]; seen {
			continue
		}
		if _, dead := tombstones[lv.ID]; dead {
			continue
		}
		result.Merged = append(result.Merged, lv)
	}

	sort.Slice(result.Merged, func(i, j int) bool {
		return result.Merged[i].ID < result.Merged[j].ID
	})

	return result
}
