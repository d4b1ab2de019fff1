package handler

import (
	"fmt"
	"net/http"

	"github.com/kennel/kennel/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "kennel_users_created_total %d\n", snap.UsersCreated)
	writeMetric(w, "kennel_users_updated_total %d\n", snap.UsersUpdated)
	writeMetric(w, "kennel_users_deleted_total %d\n", snap.UsersDeleted)

	writeMetric(w, "kennel_user_cache_requests_total{result=\"hit\"} %d\n", snap.UserCacheHits)
	writeMetric(w, "kennel_user_cache_requests_total{result=\"miss\"} %d\n", snap.UserCacheMisses)

	writeMetric(w, "kennel_dogs_created_total %d\n", snap.DogsCreated)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
