package ingest

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/vistara-ai/vistara/internal/common"
	"github.com/vistara-ai/vistara/internal/models"
)

// Aggregator builds the region-month table from the three category
// directories. Files within a category are concatenated as-is before
// summing; overlapping row sets across files would double-count, which
// matches the upstream data contract (files are disjoint) and is not
// guarded against here.
type Aggregator struct {
	biometricDir   string
	demographicDir string
	enrolmentDir   string
	logger         arbor.ILogger
}

// NewAggregator creates an aggregator over the configured dataset root.
func NewAggregator(cfg *common.DatasetsConfig, logger arbor.ILogger) *Aggregator {
	return &Aggregator{
		biometricDir:   filepath.Join(cfg.Dir, cfg.BiometricDir),
		demographicDir: filepath.Join(cfg.Dir, cfg.DemographicDir),
		enrolmentDir:   filepath.Join(cfg.Dir, cfg.EnrolmentDir),
		logger:         logger,
	}
}

// groupKey identifies one canonical region key and month bucket.
type groupKey struct {
	state    string
	district string
	date     time.Time
}

// Load discovers, parses, cleans and aggregates the three categories
// into one outer-joined table, zero-filled and sorted ascending by
// (state, district, date). When every category yields zero usable rows
// the result is an empty table, not an error; downstream stages
// short-circuit on it.
func (a *Aggregator) Load() ([]*models.RegionMonth, error) {
	bio := sumByGroup(loadCategory(a.biometricDir, biometricCategory, a.logger))
	demo := sumByGroup(loadCategory(a.demographicDir, demographicCategory, a.logger))
	enrol := sumByGroup(loadCategory(a.enrolmentDir, enrolmentCategory, a.logger))

	merged := make(map[groupKey]*models.RegionMonth)
	rowFor := func(key groupKey) *models.RegionMonth {
		if row, ok := merged[key]; ok {
			return row
		}
		row := &models.RegionMonth{
			State:    key.state,
			District: key.district,
			Date:     key.date,
		}
		merged[key] = row
		return row
	}

	// Outer join: a region-month present in any category appears in the
	// result. Absent categories stay at their zero values.
	for key, sums := range bio {
		row := rowFor(key)
		row.BioAge5To17 = sums[0]
		row.BioAge17Up = sums[1]
	}
	for key, sums := range demo {
		row := rowFor(key)
		row.DemoAge5To17 = sums[0]
		row.DemoAge17Up = sums[1]
	}
	for key, sums := range enrol {
		row := rowFor(key)
		row.EnrolAge0To5 = sums[0]
		row.EnrolAge5To17 = sums[1]
		row.EnrolAge18Up = sums[2]
	}

	rows := make([]*models.RegionMonth, 0, len(merged))
	for _, row := range merged {
		rows = append(rows, row)
	}
	SortRows(rows)

	a.logger.Info().
		Int("rows", len(rows)).
		Int("biometric_groups", len(bio)).
		Int("demographic_groups", len(demo)).
		Int("enrolment_groups", len(enrol)).
		Msg("Merged category aggregates")

	return rows, nil
}

// sumByGroup sums the category counters per (state, district, month).
func sumByGroup(rows []rawRow) map[groupKey][]float64 {
	groups := make(map[groupKey][]float64)
	for _, row := range rows {
		key := groupKey{state: row.state, district: row.district, date: row.date}
		sums, ok := groups[key]
		if !ok {
			sums = make([]float64, len(row.counters))
			groups[key] = sums
		}
		for i, v := range row.counters {
			sums[i] += v
		}
	}
	return groups
}

// SortRows sorts the table ascending by (state, district, date). The
// lag computation in the metric engine depends on this order within
// each canonical region key group.
func SortRows(rows []*models.RegionMonth) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].State != rows[j].State {
			return rows[i].State < rows[j].State
		}
		if rows[i].District != rows[j].District {
			return rows[i].District < rows[j].District
		}
		return rows[i].Date.Before(rows[j].Date)
	})
}
