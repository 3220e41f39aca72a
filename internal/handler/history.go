package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/snowgoose-ai/gateway/internal/middleware"
	"github.com/snowgoose-ai/gateway/internal/model"
	"github.com/snowgoose-ai/gateway/internal/service"
	"github.com/snowgoose-ai/gateway/pkg/logger"
)

// HistoryHandler handles conversation archival and retrieval.
type HistoryHandler struct {
	archive *service.ArchiveService
	logger  *logger.Logger
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(archive *service.ArchiveService, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{archive: archive, logger: log}
}

type archivePayload struct {
	Conversation json.RawMessage `json:"conversation"`
}

// Archive handles POST /api/v1/history. The body carries the full transcript;
// the service titles it and persists it atomically.
func (h *HistoryHandler) Archive(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var payload archivePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(payload.Conversation) == 0 {
		respondError(w, http.StatusBadRequest, "conversation is required")
		return
	}

	title, err := h.archive.Archive(r.Context(), userID, payload.Conversation)
	if err != nil {
		h.logger.Error("failed to archive conversation",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, model.ArchiveResponse{
		Message: "conversation archived",
		Title:   title,
	})
}

// List handles GET /api/v1/history.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	items, err := h.archive.History(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list history",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "failed to list history")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// Delete handles DELETE /api/v1/history/{id}.
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid history id")
		return
	}

	if err := h.archive.Delete(r.Context(), id, userID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "conversation deleted"})
}
