package models

// Forecast is the result of a linear trend projection for one
// district, with the optional intervention-adjusted variant alongside
// the baseline. History is never adjusted, only the projection.
type Forecast struct {
	District string `json:"district"`
	Periods  int    `json:"periods"`
	Centers  int    `json:"centers"`

	// History is the observed total_updates series the trend was
	// fitted on, in date order.
	History []float64 `json:"history"`

	// Baseline is the unadjusted projection for the next Periods
	// months beyond the observed history.
	Baseline []float64 `json:"baseline"`

	// Adjusted is Baseline scaled by the intervention multiplier
	// (1 - centers * capacity factor). Equal to Baseline when Centers
	// is 0.
	Adjusted []float64 `json:"adjusted"`
}
