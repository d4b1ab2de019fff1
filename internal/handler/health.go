package handler

import (
	"context"
	"net/http"
	"time"
)

// readyTimeout bounds every dependency check of one /readyz call.
const readyTimeout = 5 * time.Second

// Per-dependency results reported by /readyz.
const (
	checkOK            = "ok"
	checkNotConfigured = "not configured"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// dependency is one named backend probed by Readyz.
type dependency struct {
	name    string
	checker HealthChecker
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	deps []dependency
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for cache when REDIS_URL is not set.
func NewHealthHandler(db, cache HealthChecker) *HealthHandler {
	return &HealthHandler{
		deps: []dependency{
			{name: "sqlite", checker: db},
			{name: "redis", checker: cache},
		},
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz reports liveness without touching any dependency.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz pings every dependency and answers 503 if any configured one fails.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	resp := HealthResponse{
		Status: "ok",
		Checks: make(map[string]string, len(h.deps)),
	}
	status := http.StatusOK

	for _, dep := range h.deps {
		result, healthy := checkDependency(ctx, dep.checker)
		resp.Checks[dep.name] = result
		if !healthy {
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, resp)
}

// checkDependency pings c. An unset dependency counts as healthy.
func checkDependency(ctx context.Context, c HealthChecker) (string, bool) {
	if c == nil {
		return checkNotConfigured, true
	}
	if err := c.Ping(ctx); err != nil {
		return "error: " + err.Error(), false
	}
	return checkOK, true
}
