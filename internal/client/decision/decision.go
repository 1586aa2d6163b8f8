// Package decision implements the pure sync decision engine: given local and
// server collection metadata it chooses a one-shot bulk strategy. It performs
// no I/O so the full truth table is unit-testable.
package decision

import (
	"github.com/treystu/bmsview-sync/internal/models"
	"github.com/treystu/bmsview-sync/pkg/api"
)

// Decide compares local metadata against the server's metadata payload and
// returns the bulk action to take. Checks are applied in precedence order:
//
//  1. empty local, non-empty server -> pull
//  2. both empty -> skip
//  3. non-empty local, empty server -> push
//  4. both sides carry timestamps -> newer side wins; on equal timestamps the
//     side with more records wins; identical metadata -> skip
//  5. no usable timestamps -> reconcile, the safe bidirectional fallback
//
// Calling Decide twice with the same inputs yields an identical decision.
func Decide(local *models.CollectionMetadata, server *api.MetadataResponse) models.SyncDecision {
	d := models.SyncDecision{
		LocalTimestamp:  local.LastModified,
		ServerTimestamp: server.LastModified,
		LocalCount:      local.RecordCount,
		ServerCount:     server.RecordCount,
	}

	switch {
	case local.RecordCount == 0 && server.RecordCount > 0:
		d.Action = models.ActionPull
		d.Reason = "local cache empty"
		return d

	case local.RecordCount == 0 && server.RecordCount == 0:
		d.Action = models.ActionSkip
		d.Reason = "both empty"
		return d

	case local.RecordCount > 0 && server.RecordCount == 0:
		d.Action = models.ActionPush
		d.Reason = "server empty, push local"
		return d
	}

	if !local.LastModified.IsZero() && !server.LastModified.IsZero() {
		switch {
		case local.LastModified.After(server.LastModified):
			d.Action = models.ActionPush
			d.Reason = "local is newer"
		case server.LastModified.After(local.LastModified):
			d.Action = models.ActionPull
			d.Reason = "server is newer"
		case local.RecordCount > server.RecordCount:
			d.Action = models.ActionPush
			d.Reason = "equal timestamps, local has more records"
		case server.RecordCount > local.RecordCount:
			d.Action = models.ActionPull
			d.Reason = "equal timestamps, server has more records"
		default:
			d.Action = models.ActionSkip
			d.Reason = "identical"
		}
		return d
	}

	// Metadata is insufficient to infer a direction.
	d.Action = models.ActionReconcile
	d.Reason = "no usable timestamps, full merge required"
	return d
}
