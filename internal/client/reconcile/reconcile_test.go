package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treystu/bmsview-sync/internal/models"
)

func rec(id string, at time.Time) *models.CachedRecord {
	return &models.CachedRecord{ID: id, UpdatedAt: at}
}

func TestReconcile_ServerWinsTies(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	local := rec("a", at)
	local.Payload = []byte(`{"side":"local"}`)
	server := rec("a", at)
	server.Payload = []byte(`{"side":"server"}`)

	result := Reconcile([]*models.CachedRecord{local}, []*models.CachedRecord{server}, nil, 0)

	require.Len(t, result.Merged, 1)
	assert.Equal(t, server, result.Merged[0])
	assert.Empty(t, result.Conflicts, "exact ties are not conflicts")
}

func TestReconcile_NewerSideWins(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("local newer", func(t *testing.T) {
		local := rec("a", at.Add(5*time.Second))
		server := rec("a", at)

		result := Reconcile([]*models.CachedRecord{local}, []*models.CachedRecord{server}, nil, 0)

		require.Len(t, result.Merged, 1)
		assert.Equal(t, local, result.Merged[0])
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, models.ResolutionLocalWon, result.Conflicts[0].Resolution)
	})

	t.Run("server newer", func(t *testing.T) {
		local := rec("a", at)
		server := rec("a", at.Add(5*time.Second))

		result := Reconcile([]*models.CachedRecord{local}, []*models.CachedRecord{server}, nil, 0)

		require.Len(t, result.Merged, 1)
		assert.Equal(t, server, result.Merged[0])
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, models.ResolutionServerWon, result.Conflicts[0].Resolution)
		assert.Equal(t, local, result.Conflicts[0].Local)
		assert.Equal(t, server, result.Conflicts[0].Server)
	})
}

func TestReconcile_ThresholdSilencesSmallSkew(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	// 800ms apart: resolved, but below the 1s threshold so no conflict.
	local := rec("a", at)
	server := rec("a", at.Add(800*time.Millisecond))

	result := Reconcile([]*models.CachedRecord{local}, []*models.CachedRecord{server}, nil, 0)

	require.Len(t, result.Merged, 1)
	assert.Equal(t, server, result.Merged[0])
	assert.Empty(t, result.Conflicts)

	// Exactly at the threshold is still silent; strictly above reports.
	boundary := Reconcile(
		[]*models.CachedRecord{rec("a", at)},
		[]*models.CachedRecord{rec("a", at.Add(DefaultConflictThreshold))},
		nil, 0)
	assert.Empty(t, boundary.Conflicts)

	over := Reconcile(
		[]*models.CachedRecord{rec("a", at)},
		[]*models.CachedRecord{rec("a", at.Add(DefaultConflictThreshold+time.Nanosecond))},
		nil, 0)
	assert.Len(t, over.Conflicts, 1)
}

func TestReconcile_TombstonesAreTerminal(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	// The local edit is newer than everything, yet the tombstone still wins.
	local := []*models.CachedRecord{rec("a", at.Add(time.Hour)), rec("b", at)}
	server := []*models.CachedRecord{rec("a", at)}

	result := Reconcile(local, server, []string{"a"}, 0)

	require.Len(t, result.Merged, 1)
	assert.Equal(t, "b", result.Merged[0].ID)
	assert.Empty(t, result.Conflicts)
}

func TestReconcile_OneSidedRecordsPassThrough(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	local := []*models.CachedRecord{rec("local-only", at)}
	server := []*models.CachedRecord{rec("server-only", at)}

	result := Reconcile(local, server, nil, 0)

	require.Len(t, result.Merged, 2)
	// Sorted by id.
	assert.Equal(t, "local-only", result.Merged[0].ID)
	assert.Equal(t, "server-only", result.Merged[1].ID)
}

func TestReconcile_Empty(t *testing.T) {
	result := Reconcile(nil, nil, nil, 0)
	assert.Empty(t, result.Merged)
	assert.Empty(t, result.Conflicts)
}
