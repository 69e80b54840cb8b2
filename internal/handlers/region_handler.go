package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/vistara-ai/vistara/internal/services/snapshot"
)

// RegionHandler serves the filtered annotated table.
type RegionHandler struct {
	snapshots *snapshot.Service
	logger    arbor.ILogger
}

// NewRegionHandler creates a new region handler
func NewRegionHandler(snapshots *snapshot.Service, logger arbor.ILogger) *RegionHandler {
	return &RegionHandler{
		snapshots: snapshots,
		logger:    logger,
	}
}

// ListHandler returns annotated rows matching the request filter, with
// pagination. GET /api/regions
func (h *RegionHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
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
	page, pageSize := GetPaginationParams(r)
	pageRows, pagination := Paginate(rows, page, pageSize)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":       pageRows,
		"pagination": pagination,
	})
}
