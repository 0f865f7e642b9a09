// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/claritypay/clarity/internal/domain/model"
)

// HealthDependencies defines the interface for health checks.
type HealthDependencies interface {
	Health(ctx context.Context) model.HealthStatus
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps HealthDependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status         string `json:"status"`
	ModelLoaded    bool   `json:"model_loaded"`
	StoreConnected bool   `json:"store_connected"`
	Version        string `json:"version"`
}

// HandleHealth handles GET /health requests. The service reports healthy
// when the model is loaded; a disconnected store only degrades it.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	hs := h.deps.Health(r.Context())
	resp := healthResponse{
		Status:         "healthy",
		ModelLoaded:    hs.ModelLoaded,
		StoreConnected: hs.StoreConnected,
		Version:        hs.Version,
	}
	status := http.StatusOK
	if !hs.ModelLoaded {
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	} else if !hs.StoreConnected {
		resp.Status = "degraded"
	}
	writeJSON(w, status, resp)
}
