package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/snowgoose-ai/gateway/internal/middleware"
	"github.com/snowgoose-ai/gateway/internal/model"
	"github.com/snowgoose-ai/gateway/internal/service"
	"github.com/snowgoose-ai/gateway/pkg/logger"
)

// ChatHandler handles chat and image-generation requests.
type ChatHandler struct {
	chat   *service.ChatService
	logger *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chat *service.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: log}
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var payload model.ChatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Model == "" {
		respondError(w, http.StatusBadRequest, "model is required")
		return
	}
	if err := middleware.ValidatePrompt(payload.Prompt); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateImageData(payload.ImageData); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.chat.Chat(r.Context(), &payload)
	if err != nil {
		h.logger.Error("chat dispatch failed",
			zap.String("model", payload.Model),
			zap.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, reply)
}

// GenerateImage handles POST /api/v1/dalle.
func (h *ChatHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var payload model.ImagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidatePrompt(payload.Prompt); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, err := h.chat.GenerateImage(r.Context(), payload.Prompt)
	if err != nil {
		h.logger.Error("image generation failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, img)
}
