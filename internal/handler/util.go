// Package handler implements HTTP handlers for the gateway API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/snowgoose-ai/gateway/internal/model"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a JSON error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain errors onto HTTP status codes. Resolution
// failures are caller errors; vendor failures are upstream errors.
func respondServiceError(w http.ResponseWriter, err error) {
	var vendorErr *model.VendorError

	switch {
	case model.IsResolutionError(err):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrNotVisionCapable):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrUnknownVendor):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, model.ErrNotOwner):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &vendorErr):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
