package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistara-ai/vistara/internal/common"
	"github.com/vistara-ai/vistara/internal/models"
)

func newTestClassifier() *Classifier {
	cfg := common.NewDefaultConfig()
	return NewClassifier(&cfg.Analytics, common.GetLogger())
}

// clusterRows builds a tight cluster of ordinary rows plus a handful of
// extreme outliers in the metric feature space.
func clusterRows(t *testing.T, normal, outliers int) []*models.RegionMonth {
	t.Helper()
	rows := make([]*models.RegionMonth, 0, normal+outliers)
	for i := 0; i < normal; i++ {
		// Small deterministic jitter around a typical operating point.
		jitter := float64(i%7) * 0.01
		rows = append(rows, &models.RegionMonth{
			State:           "KERALA",
			District:        "KOCHI",
			Velocity:        0.1 + jitter,
			DivergenceRatio: 1.0 + jitter,
			MigrationIndex:  2.0 + jitter,
		})
	}
	for i := 0; i < outliers; i++ {
		rows = append(rows, &models.RegionMonth{
			State:           "ASSAM",
			District:        "SILCHAR",
			Velocity:        50.0 + float64(i),
			DivergenceRatio: 80.0,
			MigrationIndex:  120.0,
		})
	}
	return rows
}

func TestRiskFor(t *testing.T) {
	tests := []struct {
		name      string
		label     int
		score     float64
		threshold float64
		expected  models.RiskLevel
	}{
		{"outlier is high regardless of score", -1, 5.0, 0.1, models.RiskHigh},
		{"outlier with negative score is high", -1, -0.3, 0.1, models.RiskHigh},
		{"inlier below threshold is medium", 1, 0.05, 0.1, models.RiskMedium},
		{"inlier at threshold is low", 1, 0.1, 0.1, models.RiskLow},
		{"inlier above threshold is low", 1, 0.4, 0.1, models.RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RiskFor(tt.label, tt.score, tt.threshold))
		})
	}
}

func TestClassifyFlagsExtremeOutliers(t *testing.T) {
	classifier := newTestClassifier()
	// Fewer extremes than the contamination budget (5% of 100), so every
	// one of them falls strictly below the decision cut.
	rows := clusterRows(t, 97, 3)

	classifier.Classify(rows)

	for _, row := range rows[97:] {
		assert.Equal(t, -1, row.AnomalyLabel, "extreme point should be labelled an outlier")
		assert.Equal(t, models.RiskHigh, row.RiskLevel)
		assert.Less(t, row.AnomalyScore, 0.0)
	}

	// The bulk of the cluster should be inliers.
	inliers := 0
	for _, row := range rows[:97] {
		if row.AnomalyLabel == 1 {
			inliers++
		}
	}
	assert.Greater(t, inliers, 90, "cluster rows should mostly be inliers")
}

func TestClassifySmallBatchFlagsExtreme(t *testing.T) {
	classifier := newTestClassifier()
	// Ten rows is well under 1/contamination; the extreme must still
	// clear the decision cut.
	rows := clusterRows(t, 9, 1)

	classifier.Classify(rows)

	extreme := rows[9]
	assert.Equal(t, -1, extreme.AnomalyLabel)
	assert.Equal(t, models.RiskHigh, extreme.RiskLevel)
	assert.Less(t, extreme.AnomalyScore, 0.0)
}

func TestClassifyOutlierScoresBelowInlierScores(t *testing.T) {
	classifier := newTestClassifier()
	rows := clusterRows(t, 97, 3)

	classifier.Classify(rows)

	maxOutlier := math.Inf(-1)
	for _, row := range rows[97:] {
		if row.AnomalyScore > maxOutlier {
			maxOutlier = row.AnomalyScore
		}
	}
	minInlier := math.Inf(1)
	for _, row := range rows[:97] {
		if row.AnomalyLabel == 1 && row.AnomalyScore < minInlier {
			minInlier = row.AnomalyScore
		}
	}
	assert.Less(t, maxOutlier, minInlier)
}

func TestClassifyDeterministicForFixedSeed(t *testing.T) {
	classifier := newTestClassifier()

	first := clusterRows(t, 60, 3)
	second := clusterRows(t, 60, 3)

	classifier.Classify(first)
	classifier.Classify(second)

	for i := range first {
		require.Equal(t, first[i].AnomalyLabel, second[i].AnomalyLabel, "row %d label", i)
		require.Equal(t, first[i].AnomalyScore, second[i].AnomalyScore, "row %d score", i)
		require.Equal(t, first[i].RiskLevel, second[i].RiskLevel, "row %d risk", i)
	}
}

func TestClassifyZeroesNonFiniteFeatures(t *testing.T) {
	classifier := newTestClassifier()
	rows := clusterRows(t, 30, 0)
	rows = append(rows, &models.RegionMonth{
		State:           "BIHAR",
		District:        "PATNA",
		Velocity:        math.NaN(),
		DivergenceRatio: math.Inf(1),
		MigrationIndex:  math.Inf(-1),
	})

	classifier.Classify(rows)

	for i, row := range rows {
		require.False(t, math.IsNaN(row.AnomalyScore), "row %d score is NaN", i)
		require.False(t, math.IsInf(row.AnomalyScore, 0), "row %d score is Inf", i)
		require.True(t, row.RiskLevel.Valid(), "row %d has no risk tier", i)
	}
}

func TestClassifyEmptyTableIsNoOp(t *testing.T) {
	classifier := newTestClassifier()
	classifier.Classify(nil)
}

func TestClassifyAnnotatesEveryRow(t *testing.T) {
	classifier := newTestClassifier()
	rows := clusterRows(t, 40, 2)

	classifier.Classify(rows)

	for i, row := range rows {
		require.Contains(t, []int{-1, 1}, row.AnomalyLabel, "row %d label", i)
		require.True(t, row.RiskLevel.Valid(), "row %d risk", i)
	}
}
