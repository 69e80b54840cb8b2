package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/vistara-ai/vistara/internal/services/report"
	"github.com/vistara-ai/vistara/internal/services/snapshot"
)

// ExportHandler serves the filtered annotated table as a CSV download.
type ExportHandler struct {
	snapshots *snapshot.Service
	logger    arbor.ILogger
}

// NewExportHandler creates a new export handler
func NewExportHandler(snapshots *snapshot.Service, logger arbor.ILogger) *ExportHandler {
	return &ExportHandler{
		snapshots: snapshots,
		logger:    logger,
	}
}

// CSVHandler streams the filtered table with all derived and annotated
// columns. GET /api/export
func (h *ExportHandler) CSVHandler(w http.ResponseWriter, r *http.Request) {
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

	filename := fmt.Sprintf("vistara_report_%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := report.WriteCSV(w, rows); err != nil {
		// Headers are already out; all that is left is logging.
		h.logger.Error().Err(err).Msg("Failed to stream CSV export")
		return
	}

	h.logger.Debug().Int("rows", len(rows)).Msg("CSV export served")
}
