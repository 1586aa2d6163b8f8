package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treystu/bmsview-sync/internal/models"
	"github.com/treystu/bmsview-sync/pkg/api"
)

func TestClient_Metadata(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/sync/systems/metadata", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(api.MetadataResponse{
			Collection:   "systems",
			RecordCount:  3,
			LastModified: now,
			ServerTime:   now,
			Checksum:     "abc",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", 0)

	meta, err := client.Metadata(context.Background(), models.CollectionSystems)
	require.NoError(t, err)
	assert.Equal(t, "systems", meta.Collection)
	assert.Equal(t, 3, meta.RecordCount)
	assert.True(t, meta.LastModified.Equal(now))
}

func TestClient_Changes(t *testing.T) {
	since := time.Date(2024, 1, 15, 10, 0, 0, 123456789, time.UTC)

	t.Run("with watermark", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.URL.Query().Get("since")
			parsed, err := time.Parse(models.TimeLayout, got)
			require.NoError(t, err)
			assert.True(t, parsed.Equal(since))

			_ = json.NewEncoder(w).Encode(api.ChangesResponse{
				ServerTime: since.Add(time.Minute),
				Items:      []api.Record{{ID: "a", UpdatedAt: since}},
				DeletedIDs: []string{"gone"},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "", 0)

		resp, err := client.Changes(context.Background(), models.CollectionSystems, since)
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "a", resp.Items[0].ID)
		assert.Equal(t, []string{"gone"}, resp.DeletedIDs)
	})

	t.Run("zero watermark omits the parameter", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("since"))
			_ = json.NewEncoder(w).Encode(api.ChangesResponse{})
		}))
		defer server.Close()

		client := NewClient(server.URL, "", 0)

		_, err := client.Changes(context.Background(), models.CollectionSystems, time.Time{})
		require.NoError(t, err)
	})
}

func TestClient_Push(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/sync/history/push", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Items, 2)

		_ = json.NewEncoder(w).Encode(api.PushResponse{SyncedAt: now, Accepted: 2})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 0)

	resp, err := client.Push(context.Background(), models.CollectionHistory, []api.Record{
		{ID: "a", UpdatedAt: now},
		{ID: "b", UpdatedAt: now},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Accepted)
	assert.True(t, resp.SyncedAt.Equal(now))
}

func TestClient_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "unknown_collection"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 0)

	_, err := client.Metadata(context.Background(), "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_collection")
	assert.Contains(t, err.Error(), "404")
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Metadata(ctx, models.CollectionSystems)
	assert.Error(t, err)
}
