// Package forecast fits per-district linear trends over the update
// history and projects them forward, optionally adjusted by a what-if
// intervention multiplier.
package forecast

import (
	"errors"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"gonum.org/v1/gonum/stat"

	"github.com/vistara-ai/vistara/internal/common"
	"github.com/vistara-ai/vistara/internal/models"
	"github.com/vistara-ai/vistara/internal/services/ingest"
)

// ErrNoForecast is returned when a district has fewer than two
// historical rows, which is not enough to fit a trend. Callers treat
// it as a "cannot forecast" result, not a failure.
var ErrNoForecast = errors.New("not enough history to fit a trend")

// Service projects total_updates for a district.
type Service struct {
	periods        int
	capacityFactor float64
	logger         arbor.ILogger
}

// NewService creates a forecast service from configuration.
func NewService(cfg *common.ForecastConfig, logger arbor.ILogger) *Service {
	return &Service{
		periods:        cfg.Periods,
		capacityFactor: cfg.CapacityFactor,
		logger:         logger,
	}
}

// Forecast fits a first-degree trend of the district's total_updates
// against a zero-based month index and evaluates it at the next
// `periods` indices. A district name shared by more than one state
// pools all matching rows, ordered by date. A non-positive horizon
// falls back to the configured default. The intervention adjustment
// scales only the projection, never the history, and is deliberately
// unbounded.
func (s *Service) Forecast(rows []*models.RegionMonth, district string, periods, centers int) (*models.Forecast, error) {
	if periods <= 0 {
		periods = s.periods
	}

	type observation struct {
		date  time.Time
		total float64
	}

	target := ingest.NormalizeName(district)
	var observed []observation
	for _, row := range rows {
		if row.District == target {
			observed = append(observed, observation{date: row.Date, total: row.TotalUpdates})
		}
	}
	sort.SliceStable(observed, func(i, j int) bool {
		return observed[i].date.Before(observed[j].date)
	})

	history := make([]float64, len(observed))
	for i, o := range observed {
		history[i] = o.total
	}

	if len(history) < 2 {
		s.logger.Debug().
			Str("district", target).
			Int("rows", len(history)).
			Msg("Insufficient history for forecast")
		return nil, ErrNoForecast
	}

	xs := make([]float64, len(history))
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, history, nil, false)

	baseline := make([]float64, periods)
	for i := 0; i < periods; i++ {
		baseline[i] = alpha + beta*float64(len(history)+i)
	}

	result := &models.Forecast{
		District: target,
		Periods:  periods,
		Centers:  centers,
		History:  history,
		Baseline: baseline,
		Adjusted: ApplyIntervention(baseline, centers, s.capacityFactor),
	}

	s.logger.Debug().
		Str("district", target).
		Int("history", len(history)).
		Int("periods", periods).
		Int("centers", centers).
		Msg("Forecast generated")

	return result, nil
}

// ApplyIntervention scales a projection by (1 - centers*factor), the
// linear per-service-point effect. No cap is applied: a large enough
// deployment drives the multiplier negative, which is left visible to
// the caller rather than silently clamped.
func ApplyIntervention(baseline []float64, centers int, factor float64) []float64 {
	multiplier := 1.0 - float64(centers)*factor
	adjusted := make([]float64, len(baseline))
	for i, v := range baseline {
		adjusted[i] = v * multiplier
	}
	return adjusted
}
