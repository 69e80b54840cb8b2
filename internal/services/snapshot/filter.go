package snapshot

import (
	"time"

	"github.com/vistara-ai/vistara/internal/models"
)

// Filter narrows the annotated table for presentation consumers. Zero
// values mean "no constraint". Filtering copies the row slice, never
// the rows themselves; the snapshot stays untouched.
type Filter struct {
	From   time.Time
	To     time.Time
	States []string
	Risks  []models.RiskLevel
}

// Apply returns the rows matching every set constraint, preserving the
// (state, district, date) order of the input.
func (f Filter) Apply(rows []*models.RegionMonth) []*models.RegionMonth {
	states := make(map[string]bool, len(f.States))
	for _, s := range f.States {
		states[s] = true
	}
	risks := make(map[models.RiskLevel]bool, len(f.Risks))
	for _, r := range f.Risks {
		risks[r] = true
	}

	filtered := make([]*models.RegionMonth, 0, len(rows))
	for _, row := range rows {
		if !f.From.IsZero() && row.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && row.Date.After(f.To) {
			continue
		}
		if len(states) > 0 && !states[row.State] {
			continue
		}
		if len(risks) > 0 && !risks[row.RiskLevel] {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// Summarize produces the headline statistics for a set of rows: record
// and region counts, the High tier count, and the row with the highest
// velocity.
func Summarize(rows []*models.RegionMonth) models.Summary {
	summary := models.Summary{Records: len(rows)}

	states := make(map[string]bool)
	districts := make(map[string]bool)
	for _, row := range rows {
		states[row.State] = true
		districts[row.Key()] = true
		if row.RiskLevel == models.RiskHigh {
			summary.HighRisk++
		}
		if summary.TopVelocity == nil || row.Velocity > summary.TopVelocity.Velocity {
			summary.TopVelocity = row
		}
	}
	summary.States = len(states)
	summary.Districts = len(districts)

	return summary
}
