// Package analytics derives the stress metrics for each region-month
// row and classifies statistical outliers with a seeded isolation
// forest.
package analytics

import (
	"github.com/vistara-ai/vistara/internal/models"
)

// ComputeMetrics annotates rows in place with the derived totals, the
// month-over-month velocity, the divergence ratio and the migration
// index. Rows must already be sorted by (state, district, date); the
// lag is taken from the preceding row within each canonical region key
// group. An empty table is returned unchanged.
func ComputeMetrics(rows []*models.RegionMonth) []*models.RegionMonth {
	if len(rows) == 0 {
		return rows
	}

	prevKey := ""
	prevUpdates := 0.0

	for _, row := range rows {
		row.TotalBioUpdates = row.BioAge5To17 + row.BioAge17Up
		row.TotalDemoUpdates = row.DemoAge5To17 + row.DemoAge17Up
		row.TotalUpdates = row.TotalBioUpdates + row.TotalDemoUpdates
		row.TotalEnrolments = row.EnrolAge0To5 + row.EnrolAge5To17 + row.EnrolAge18Up

		if row.Key() == prevKey {
			row.PrevMonthUpdates = prevUpdates
		} else {
			// First observed month of a region key has no predecessor.
			row.PrevMonthUpdates = 0
		}

		// Velocity is defined as 0 when there is no prior activity, so a
		// cold-start month never reads as a spike.
		if row.PrevMonthUpdates > 0 {
			row.Velocity = (row.TotalUpdates - row.PrevMonthUpdates) / row.PrevMonthUpdates
		} else {
			row.Velocity = 0
		}

		// The +1 offsets keep both ratios defined when the denominator
		// counters are zero.
		row.DivergenceRatio = row.TotalDemoUpdates / (row.TotalBioUpdates + 1)
		row.MigrationIndex = row.TotalDemoUpdates / (row.TotalEnrolments + 1)

		prevKey = row.Key()
		prevUpdates = row.TotalUpdates
	}

	return rows
}
