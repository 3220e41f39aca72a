package handler

import (
	"net/http"

	"github.com/snowgoose-ai/gateway/internal/nats"
	"github.com/snowgoose-ai/gateway/internal/store"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	store *store.Store
	nats  *nats.Client
}

// NewHealthHandler creates a new health handler. nats may be nil when event
// publishing is disabled.
func NewHealthHandler(st *store.Store, nc *nats.Client) *HealthHandler {
	return &HealthHandler{store: st, nats: nc}
}

// Health handles liveness checks.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles readiness checks: the database must answer and, when
// configured, NATS must be connected.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	status := http.StatusOK

	if err := h.store.Ping(r.Context()); err != nil {
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	if h.nats != nil {
		checks["nats"] = "ok"
		if !h.nats.IsConnected() {
			checks["nats"] = "disconnected"
			status = http.StatusServiceUnavailable
		}
	}

	respondJSON(w, status, checks)
}
