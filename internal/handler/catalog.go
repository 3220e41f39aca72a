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
	"github.com/snowgoose-ai/gateway/internal/store"
	"github.com/snowgoose-ai/gateway/pkg/logger"
)

// CatalogHandler serves the model registry plus persona and output format
// management.
type CatalogHandler struct {
	store  *store.Store
	chat   *service.ChatService
	logger *logger.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(st *store.Store, chat *service.ChatService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{store: st, chat: chat, logger: log}
}

// ListModels handles GET /api/v1/models.
func (h *CatalogHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.store.ListModels(r.Context())
	if err != nil {
		h.logger.Error("failed to list models", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list models")
		return
	}
	respondJSON(w, http.StatusOK, models)
}

// GetModel handles GET /api/v1/models/{id}. The id may be a numeric model id
// or a vendor api_name on the legacy lookup path.
func (h *CatalogHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	m, err := h.chat.ResolveModel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// ListPersonas handles GET /api/v1/personas.
func (h *CatalogHandler) ListPersonas(w http.ResponseWriter, r *http.Request) {
	personas, err := h.store.ListPersonas(r.Context())
	if err != nil {
		h.logger.Error("failed to list personas", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list personas")
		return
	}
	respondJSON(w, http.StatusOK, personas)
}

// GetPersona handles GET /api/v1/personas/{id}.
func (h *CatalogHandler) GetPersona(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid persona id")
		return
	}

	p, err := h.store.GetPersona(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// CreatePersona handles POST /api/v1/personas.
func (h *CatalogHandler) CreatePersona(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateName(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateSystemPromptFragment(req.Prompt); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.store.CreatePersona(r.Context(), req.Name, req.Prompt)
	if err != nil {
		h.logger.Error("failed to create persona", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to create persona")
		return
	}

	respondJSON(w, http.StatusCreated, model.Persona{ID: id, Name: req.Name, Prompt: req.Prompt})
}

// DeletePersona handles DELETE /api/v1/personas/{id}.
func (h *CatalogHandler) DeletePersona(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid persona id")
		return
	}

	if err := h.store.DeletePersona(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "persona deleted"})
}

// ListOutputFormats handles GET /api/v1/output-formats.
func (h *CatalogHandler) ListOutputFormats(w http.ResponseWriter, r *http.Request) {
	formats, err := h.store.ListOutputFormats(r.Context())
	if err != nil {
		h.logger.Error("failed to list output formats", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list output formats")
		return
	}
	respondJSON(w, http.StatusOK, formats)
}

// GetOutputFormat handles GET /api/v1/output-formats/{id}.
func (h *CatalogHandler) GetOutputFormat(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid output format id")
		return
	}

	f, err := h.store.GetOutputFormat(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, f)
}

// CreateOutputFormat handles POST /api/v1/output-formats.
func (h *CatalogHandler) CreateOutputFormat(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOutputFormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateName(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateSystemPromptFragment(req.Prompt); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.store.CreateOutputFormat(r.Context(), req.Name, req.Prompt, req.RenderTypeID)
	if err != nil {
		h.logger.Error("failed to create output format", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to create output format")
		return
	}

	respondJSON(w, http.StatusCreated, model.OutputFormat{
		ID:           id,
		Name:         req.Name,
		Prompt:       req.Prompt,
		RenderTypeID: req.RenderTypeID,
	})
}

// DeleteOutputFormat handles DELETE /api/v1/output-formats/{id}.
func (h *CatalogHandler) DeleteOutputFormat(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid output format id")
		return
	}

	if err := h.store.DeleteOutputFormat(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "output format deleted"})
}
