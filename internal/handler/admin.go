package handler

import (
	"net/http"
	"runtime"
	"time"

	"autoparts-storefront-api/internal/repository"
	"autoparts-storefront-api/internal/service"
	"autoparts-storefront-api/pkg/response"
)

// AdminHandler exposes operational endpoints for the storefront.
type AdminHandler struct {
	snapshots    repository.SnapshotRepository
	refresher    *service.SnapshotRefresher
	snapshotType string
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(snapshots repository.SnapshotRepository, refresher *service.SnapshotRefresher, snapshotType string) *AdminHandler {
	return &AdminHandler{
		snapshots:    snapshots,
		refresher:    refresher,
		snapshotType: snapshotType,
	}
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := map[string]interface{}{
		"uptime_seconds": int64(time.Since(StartTime).Seconds()),
		"memory_mb":      float64(memStats.Alloc) / 1024 / 1024,
		"goroutines":     runtime.NumGoroutine(),
		"snapshot_store": h.snapshotType,
	}

	if h.snapshots != nil {
		if snapStats, err := h.snapshots.GetStats(r.Context()); err == nil {
			stats["snapshots"] = snapStats
		} else {
			stats["snapshots_error"] = err.Error()
		}
	}

	response.OK(w, stats)
}

// TriggerRefresh handles POST /api/v1/admin/refresh. The refresh runs in
// the background; the endpoint acknowledges immediately.
func (h *AdminHandler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	go h.refresher.RunNow()

	response.JSON(w, http.StatusAccepted, map[string]string{
		"status": "refresh scheduled",
	})
}
