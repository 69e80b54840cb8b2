package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"

	"github.com/vistara-ai/vistara/internal/services/forecast"
	"github.com/vistara-ai/vistara/internal/services/snapshot"
)

// ForecastHandler serves per-district trend projections with the
// what-if intervention adjustment.
type ForecastHandler struct {
	snapshots *snapshot.Service
	forecasts *forecast.Service
	logger    arbor.ILogger
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(snapshots *snapshot.Service, forecasts *forecast.Service, logger arbor.ILogger) *ForecastHandler {
	return &ForecastHandler{
		snapshots: snapshots,
		forecasts: forecasts,
		logger:    logger,
	}
}

// GetHandler returns history, baseline projection and adjusted
// projection for the requested district.
// GET /api/forecast?district=...&periods=...&centers=...
func (h *ForecastHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	district := r.URL.Query().Get("district")
	if district == "" {
		WriteError(w, http.StatusBadRequest, "district parameter is required")
		return
	}

	periods := 0
	if p := r.URL.Query().Get("periods"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil || parsed < 0 {
			WriteError(w, http.StatusBadRequest, "periods must be a non-negative integer")
			return
		}
		periods = parsed
	}

	centers := 0
	if c := r.URL.Query().Get("centers"); c != "" {
		parsed, err := strconv.Atoi(c)
		if err != nil || parsed < 0 {
			WriteError(w, http.StatusBadRequest, "centers must be a non-negative integer")
			return
		}
		centers = parsed
	}

	snap, err := h.snapshots.Load()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load snapshot")
		WriteError(w, http.StatusInternalServerError, "failed to load snapshot")
		return
	}

	result, err := h.forecasts.Forecast(snap.Rows, district, periods, centers)
	if errors.Is(err, forecast.ErrNoForecast) {
		WriteError(w, http.StatusUnprocessableEntity, "not enough history to forecast this district")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("district", district).Msg("Forecast failed")
		WriteError(w, http.StatusInternalServerError, "forecast failed")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
