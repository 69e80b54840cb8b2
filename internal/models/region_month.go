package models

import "time"

// RiskLevel is the ordinal risk tier assigned to a region-month row by
// the anomaly classifier.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

// Valid reports whether the value is one of the known risk tiers.
func (r RiskLevel) Valid() bool {
	return r == RiskHigh || r == RiskMedium || r == RiskLow
}

// RegionMonth is one row of the annotated analytics table: the summed
// source counters for a canonical (state, district) pair in one
// calendar month, the metrics derived from them, and the anomaly
// annotations. Rows are created by the aggregator and annotated in
// place by the downstream stages; they are never removed.
type RegionMonth struct {
	State    string    `json:"state"`
	District string    `json:"district"`
	Date     time.Time `json:"date"` // first day of the month, UTC

	// Biometric update counters (age banded)
	BioAge5To17 float64 `json:"bio_age_5_17"`
	BioAge17Up  float64 `json:"bio_age_17_"`

	// Demographic update counters (age banded)
	DemoAge5To17 float64 `json:"demo_age_5_17"`
	DemoAge17Up  float64 `json:"demo_age_17_"`

	// New enrolment counters (age banded)
	EnrolAge0To5  float64 `json:"age_0_5"`
	EnrolAge5To17 float64 `json:"age_5_17"`
	EnrolAge18Up  float64 `json:"age_18_greater"`

	// Derived by the metric engine
	TotalBioUpdates  float64 `json:"total_bio_updates"`
	TotalDemoUpdates float64 `json:"total_demo_updates"`
	TotalUpdates     float64 `json:"total_updates"`
	TotalEnrolments  float64 `json:"total_enrolments"`
	PrevMonthUpdates float64 `json:"prev_month_updates"`
	Velocity         float64 `json:"velocity"`
	DivergenceRatio  float64 `json:"divergence_ratio"`
	MigrationIndex   float64 `json:"migration_index"`

	// Anomaly annotations. Label is -1 for outliers and 1 for inliers;
	// the score is the model decision value where lower means more
	// anomalous and negative values mark outliers.
	AnomalyLabel int       `json:"anomaly_label"`
	AnomalyScore float64   `json:"anomaly_score"`
	RiskLevel    RiskLevel `json:"risk_level"`
}

// Key returns the canonical region key used for grouping and lag
// computations.
func (r *RegionMonth) Key() string {
	return r.State + "|" + r.District
}
