package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/vistara-ai/vistara/internal/services/scheduler"
	"github.com/vistara-ai/vistara/internal/services/snapshot"
)

// SnapshotHandler serves snapshot status and the explicit reload
// trigger.
type SnapshotHandler struct {
	snapshots *snapshot.Service
	scheduler *scheduler.Service
	logger    arbor.ILogger
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(snapshots *snapshot.Service, sched *scheduler.Service, logger arbor.ILogger) *SnapshotHandler {
	return &SnapshotHandler{
		snapshots: snapshots,
		scheduler: sched,
		logger:    logger,
	}
}

// StatusHandler returns snapshot metadata plus the summary statistics
// for the filtered view. GET /api/status
func (h *SnapshotHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snap, err := h.snapshots.Load()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load snapshot")
		WriteError(w, http.StatusInternalServerError, "failed to load snapshot")
		return
	}

	rows := GetFilterParams(r).Apply(snap.Rows)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot_id": snap.ID,
		"loaded_at":   snap.LoadedAt,
		"empty":       snap.Empty(),
		"summary":     snapshot.Summarize(rows),
		"refresh":     h.scheduler.Status(),
	})
}

// ReloadHandler discards the memoized snapshot and rebuilds it from
// the source datasets. POST /api/snapshot/reload
func (h *SnapshotHandler) ReloadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	snap, err := h.snapshots.Reload()
	if err != nil {
		h.logger.Error().Err(err).Msg("Snapshot reload failed")
		WriteError(w, http.StatusInternalServerError, "snapshot reload failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"snapshot_id": snap.ID,
		"rows":        len(snap.Rows),
	})
}
