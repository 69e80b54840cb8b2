package handlers

import (
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/vistara-ai/vistara/internal/services/report"
	"github.com/vistara-ai/vistara/internal/services/snapshot"
)

// BriefHandler serves the generated policy brief as JSON, plain text
// or PDF.
type BriefHandler struct {
	snapshots *snapshot.Service
	pdf       *report.PDFService
	logger    arbor.ILogger
}

// NewBriefHandler creates a new brief handler
func NewBriefHandler(snapshots *snapshot.Service, pdf *report.PDFService, logger arbor.ILogger) *BriefHandler {
	return &BriefHandler{
		snapshots: snapshots,
		pdf:       pdf,
		logger:    logger,
	}
}

// GetHandler returns the brief for the highest-risk row of the
// filtered view. GET /api/brief (JSON), /api/brief?format=text for
// the downloadable text document.
func (h *BriefHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	brief, ok := h.buildBrief(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("format") == "text" {
		filename := fmt.Sprintf("Policy_Brief_%s.txt", brief.District)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		fmt.Fprint(w, brief.Text())
		return
	}

	WriteJSON(w, http.StatusOK, brief)
}

// PDFHandler returns the brief rendered as a PDF document.
// GET /api/brief/pdf
func (h *BriefHandler) PDFHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	brief, ok := h.buildBrief(w, r)
	if !ok {
		return
	}

	data, err := h.pdf.Render(brief)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to render policy brief PDF")
		WriteError(w, http.StatusInternalServerError, "failed to render policy brief")
		return
	}

	filename := fmt.Sprintf("Policy_Brief_%s.pdf", brief.District)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// buildBrief loads the snapshot, applies the request filter and builds
// the brief. Writes the error/no-content response itself and returns
// false when there is nothing to serve.
func (h *BriefHandler) buildBrief(w http.ResponseWriter, r *http.Request) (*report.Brief, bool) {
	snap, err := h.snapshots.Load()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load snapshot")
		WriteError(w, http.StatusInternalServerError, "failed to load snapshot")
		return nil, false
	}

	rows := GetFilterParams(r).Apply(snap.Rows)

	brief, ok := report.BuildBrief(rows)
	if !ok {
		WriteError(w, http.StatusNotFound, "no critical alerts requiring policy intervention")
		return nil, false
	}

	return brief, true
}
