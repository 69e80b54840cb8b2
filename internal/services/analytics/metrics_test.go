package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistara-ai/vistara/internal/models"
)

func month(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		t.Fatalf("failed to parse month %q: %v", value, err)
	}
	return parsed
}

func TestComputeMetricsTotalsAndRatios(t *testing.T) {
	rows := []*models.RegionMonth{
		{
			State: "X", District: "Y", Date: month(t, "2024-01"),
			BioAge5To17: 4, BioAge17Up: 5,
			DemoAge5To17: 10, DemoAge17Up: 20,
			EnrolAge0To5: 1, EnrolAge5To17: 2, EnrolAge18Up: 3,
		},
	}

	ComputeMetrics(rows)

	row := rows[0]
	assert.Equal(t, 9.0, row.TotalBioUpdates)
	assert.Equal(t, 30.0, row.TotalDemoUpdates)
	assert.Equal(t, 39.0, row.TotalUpdates)
	assert.Equal(t, 6.0, row.TotalEnrolments)

	// divergence_ratio = 30 / (9+1) = 3.0, the labor-migration signal range
	assert.InDelta(t, 3.0, row.DivergenceRatio, 1e-9)
	// migration_index = 30 / (6+1)
	assert.InDelta(t, 30.0/7.0, row.MigrationIndex, 1e-9)
}

func TestComputeMetricsVelocityWithinGroup(t *testing.T) {
	// Two months for key (X, Y): total_updates 100 then 150.
	rows := []*models.RegionMonth{
		{State: "X", District: "Y", Date: month(t, "2024-01"), BioAge5To17: 80, DemoAge5To17: 20},
		{State: "X", District: "Y", Date: month(t, "2024-02"), BioAge5To17: 100, DemoAge5To17: 50},
	}

	ComputeMetrics(rows)

	assert.Equal(t, 100.0, rows[0].TotalUpdates)
	assert.Equal(t, 150.0, rows[1].TotalUpdates)

	assert.Equal(t, 0.0, rows[0].PrevMonthUpdates)
	assert.Equal(t, 100.0, rows[1].PrevMonthUpdates)

	// First observed month is never treated as a spike.
	assert.Equal(t, 0.0, rows[0].Velocity)
	assert.InDelta(t, 0.5, rows[1].Velocity, 1e-9)
}

func TestComputeMetricsLagResetsAcrossGroups(t *testing.T) {
	rows := []*models.RegionMonth{
		{State: "A", District: "P", Date: month(t, "2024-01"), BioAge5To17: 100},
		{State: "A", District: "P", Date: month(t, "2024-02"), BioAge5To17: 200},
		{State: "A", District: "Q", Date: month(t, "2024-03"), BioAge5To17: 300},
	}

	ComputeMetrics(rows)

	// The Q group's first row must not inherit P's history.
	assert.Equal(t, 0.0, rows[2].PrevMonthUpdates)
	assert.Equal(t, 0.0, rows[2].Velocity)
}

func TestComputeMetricsZeroPriorActivityVelocity(t *testing.T) {
	// A non-first row whose previous month genuinely had zero updates.
	rows := []*models.RegionMonth{
		{State: "X", District: "Y", Date: month(t, "2024-01")},
		{State: "X", District: "Y", Date: month(t, "2024-02"), BioAge5To17: 50},
	}

	ComputeMetrics(rows)

	assert.Equal(t, 0.0, rows[1].PrevMonthUpdates)
	assert.Equal(t, 0.0, rows[1].Velocity, "zero prior activity must not produce an undefined division")
}

func TestComputeMetricsRatiosDefinedAtZeroDenominators(t *testing.T) {
	rows := []*models.RegionMonth{
		{State: "X", District: "Y", Date: month(t, "2024-01"), DemoAge5To17: 40},
	}

	ComputeMetrics(rows)

	// bio and enrolment are both zero; the +1 offsets keep the ratios finite.
	assert.InDelta(t, 40.0, rows[0].DivergenceRatio, 1e-9)
	assert.InDelta(t, 40.0, rows[0].MigrationIndex, 1e-9)
}

func TestComputeMetricsEmptyTable(t *testing.T) {
	var rows []*models.RegionMonth
	result := ComputeMetrics(rows)
	require.Empty(t, result)
}
