package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/treystu/bmsview-sync/internal/models"
	"github.com/treystu/bmsview-sync/internal/server/storage"
	"github.com/treystu/bmsview-sync/pkg/api"
)

// contextKey is the type for request context keys set by middleware.
type contextKey string

const (
	// DeviceIDKey holds the authenticated device id in the request context.
	DeviceIDKey contextKey = "device_id"
	// AgentNameKey holds the authenticated agent name in the request context.
	AgentNameKey contextKey = "agent_name"
)

// GetDeviceID extracts the device id placed in the context by AuthMiddleware.
func GetDeviceID(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDKey).(string)
	return deviceID, ok
}

// GetAgentName extracts the agent name placed in the context by AuthMiddleware.
func GetAgentName(ctx context.Context) (string, bool) {
	agentName, ok := ctx.Value(AgentNameKey).(string)
	return agentName, ok
}

// SyncHandler serves the collection sync endpoints: metadata, incremental
// changes, push and delete.
type SyncHandler struct {
	logger  *slog.Logger
	storage storage.RecordStorage
	now     func() time.Time
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(logger *slog.Logger, store storage.RecordStorage) *SyncHandler {
	return &SyncHandler{
		logger:  logger,
		storage: store,
		now:     time.Now,
	}
}

// Metadata handles GET /api/v1/sync/{collection}/metadata.
// Returns the collection digest the client compares against its cache.
func (h *SyncHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")

	// Sampled before the query so the reported time never exceeds the
	// stamp of a row the query did not see.
	serverTime := h.now().UTC()

	meta, err := h.storage.Metadata(r.Context(), collection)
	if err != nil {
		h.storageError(w, err, collection)
		return
	}

	resp := api.MetadataResponse{
		Collection:   meta.Collection,
		LastModified: meta.LastModified,
		Checksum:     meta.Checksum,
		RecordCount:  meta.RecordCount,
		ServerTime:   serverTime,
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// Changes handles GET /api/v1/sync/{collection}/changes?since=timestamp.
// An absent since parameter returns the full collection.
func (h *SyncHandler) Changes(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")

	var since time.Time
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		var err error
		since, err = time.Parse(models.TimeLayout, sinceStr)
		if err != nil {
			h.logger.Warn("invalid since parameter", "since", sinceStr, "error", err)
			h.writeError(w, http.StatusBadRequest, "invalid_since", "since must be an RFC 3339 timestamp with nanoseconds")
			return
		}
	}

	// Clients advance their pull watermark to ServerTime. Sampling it
	// before the query keeps the result superset-safe: a row stamped by a
	// push that commits while the query runs carries a later stamp than
	// this time, so the next pull still picks it up.
	serverTime := h.now().UTC()

	items, deletedIDs, err := h.storage.ChangesSince(r.Context(), collection, since)
	if err != nil {
		h.storageError(w, err, collection)
		return
	}

	resp := api.ChangesResponse{
		ServerTime: serverTime,
		Items:      items,
		DeletedIDs: deletedIDs,
	}

	h.writeJSON(w, http.StatusOK, resp)

	h.logger.Info("changes served",
		"collection", collection,
		"since", since,
		"items", len(items),
		"deleted", len(deletedIDs))
}

// Push handles POST /api/v1/sync/{collection}/push.
// The whole batch is stored atomically and every accepted record is
// restamped with the returned syncedAt.
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")

	var req api.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode push request", "error", err)
		h.writeError(w, http.StatusBadRequest, "invalid_body", "request body is not a valid push batch")
		return
	}

	for _, item := range req.Items {
		if item.ID == "" || item.UpdatedAt.IsZero() {
			h.writeError(w, http.StatusBadRequest, "invalid_record", "every record needs an id and a non-zero updatedAt")
			return
		}
	}

	accepted, rejected, syncedAt, err := h.storage.PushBatch(r.Context(), collection, req.Items)
	if err != nil {
		h.storageError(w, err, collection)
		return
	}

	resp := api.PushResponse{
		SyncedAt:    syncedAt,
		Accepted:    accepted,
		RejectedIDs: rejected,
	}

	h.writeJSON(w, http.StatusOK, resp)

	h.logger.Info("push completed",
		"collection", collection,
		"received", len(req.Items),
		"accepted", accepted,
		"rejected", len(rejected))
}

// Delete handles DELETE /api/v1/sync/{collection}/{id}.
// Writes a tombstone so the deletion propagates to every client.
func (h *SyncHandler) Delete(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	id := r.PathValue("id")

	if id == "" {
		h.writeError(w, http.StatusBadRequest, "invalid_id", "record id is required")
		return
	}

	if err := h.storage.Delete(r.Context(), collection, id, h.now().UTC()); err != nil {
		h.storageError(w, err, collection)
		return
	}

	w.WriteHeader(http.StatusNoContent)

	h.logger.Info("record tombstoned", "collection", collection, "id", id)
}

func (h *SyncHandler) storageError(w http.ResponseWriter, err error, collection string) {
	if errors.Is(err, storage.ErrCollectionUnknown) {
		h.writeError(w, http.StatusNotFound, "unknown_collection", "unknown collection: "+collection)
		return
	}
	h.logger.Error("storage operation failed", "collection", collection, "error", err)
	h.writeError(w, http.StatusInternalServerError, "internal_error", "")
}

func (h *SyncHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *SyncHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, api.ErrorResponse{Error: code, Message: message})
}
