package api

import (
	"net/http"
	"time"

	"github.com/harvinder-fsd/roster/server/internal/api/respond"
)

// HealthSource reports aggregated and per-component health.
type HealthSource interface {
	IsHealthy() bool
	Components() map[string]bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	src HealthSource
}

func NewHealthHandler(src HealthSource) *HealthHandler { return &HealthHandler{src: src} }

// CheckHealth handles GET /api/health: 200 when every dependency is up, 503 otherwise.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	if !h.src.IsHealthy() {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	respond.WriteJSON(w, code, map[string]interface{}{
		"status":     status,
		"components": h.src.Components(),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
