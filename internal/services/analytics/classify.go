package analytics

import (
	"math"
	"sort"

	"github.com/ternarybob/arbor"
	"gonum.org/v1/gonum/stat"

	"github.com/vistara-ai/vistara/internal/common"
	"github.com/vistara-ai/vistara/internal/models"
)

// Classifier fits the outlier model over the metric feature space of a
// full batch and annotates every row with a binary label, a continuous
// decision score and a risk tier. The model's notion of "outlier" is
// relative to the batch presented, so a refit is required whenever the
// input population changes; the snapshot build is the only place that
// happens.
type Classifier struct {
	contamination float64
	seed          int64
	trees         int
	sampleSize    int
	mediumScore   float64
	logger        arbor.ILogger
}

// NewClassifier creates a classifier from the analytics configuration.
func NewClassifier(cfg *common.AnalyticsConfig, logger arbor.ILogger) *Classifier {
	return &Classifier{
		contamination: cfg.Contamination,
		seed:          cfg.Seed,
		trees:         cfg.Trees,
		sampleSize:    cfg.SampleSize,
		mediumScore:   cfg.MediumScore,
		logger:        logger,
	}
}

// Classify fits the isolation forest over (velocity, divergence_ratio,
// migration_index) and annotates each row in place. Non-finite feature
// values are zeroed before the fit. The decision score follows the
// usual convention: lower means more anomalous, negative marks an
// outlier, and the contamination fraction sets where zero falls. An
// empty table is a no-op.
func (c *Classifier) Classify(rows []*models.RegionMonth) {
	if len(rows) == 0 {
		return
	}

	features := make([][]float64, len(rows))
	for i, row := range rows {
		features[i] = []float64{
			finiteOrZero(row.Velocity),
			finiteOrZero(row.DivergenceRatio),
			finiteOrZero(row.MigrationIndex),
		}
	}

	forest := fitIsolationForest(features, c.trees, c.sampleSize, c.seed)

	// Raw sample scores, negated so that lower = more anomalous. The
	// decision score shifts them by the interpolated contamination
	// percentile: the most anomalous ~contamination fraction lands
	// below zero. Interpolation keeps the offset strictly above the
	// minimum even when the batch is smaller than 1/contamination, so
	// a gross extreme in a small batch still scores negative.
	raw := make([]float64, len(rows))
	for i, point := range features {
		raw[i] = -forest.score(point)
	}

	sorted := append([]float64(nil), raw...)
	sort.Float64s(sorted)
	offset := stat.Quantile(c.contamination, stat.LinInterp, sorted, nil)

	outliers := 0
	for i, row := range rows {
		score := raw[i] - offset
		row.AnomalyScore = score
		if score < 0 {
			row.AnomalyLabel = -1
			outliers++
		} else {
			row.AnomalyLabel = 1
		}
		row.RiskLevel = RiskFor(row.AnomalyLabel, score, c.mediumScore)
	}

	c.logger.Info().
		Int("rows", len(rows)).
		Int("outliers", outliers).
		Float64("contamination", c.contamination).
		Int64("seed", c.seed).
		Msg("Anomaly classification complete")
}

// RiskFor is the row-level risk tier rule, evaluated in precedence
// order: outliers are High, inliers scoring under the threshold are
// Medium, everything else is Low.
func RiskFor(label int, score, threshold float64) models.RiskLevel {
	switch {
	case label == -1:
		return models.RiskHigh
	case score < threshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
