package api

import (
	"net/http"
	"time"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/api/respond"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
)

// ServiceHealth reports the cached state of the service and its dependencies.
type ServiceHealth interface {
	IsHealthy() bool
	Components() map[string]bool
}

// HealthHandler handles the health check endpoint
type HealthHandler struct {
	health ServiceHealth
	now    func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(h ServiceHealth) *HealthHandler {
	return &HealthHandler{health: h, now: time.Now}
}

// CheckHealth handles GET /v0/health
// 200 when every dependency is healthy, 503 otherwise.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "unhealthy", http.StatusServiceUnavailable
	if h.health.IsHealthy() {
		status, code = "healthy", http.StatusOK
	}
	respond.WriteJSON(w, code, map[string]interface{}{
		"status":     status,
		"components": h.health.Components(),
		"timestamp":  model.Timestamp(h.now()),
	})
}
