package models

import "time"

// Snapshot is one fully annotated analytics table, built in a single
// pass (aggregate, derive metrics, classify) and then shared read-only
// between presentation consumers. A new snapshot replaces the old one
// wholesale; rows are never mutated after the build completes.
type Snapshot struct {
	ID       string         `json:"id"`
	LoadedAt time.Time      `json:"loaded_at"`
	Rows     []*RegionMonth `json:"rows"`
}

// Empty reports whether the snapshot holds no rows, which is the
// degraded result of a run where every category yielded zero usable
// rows.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Rows) == 0
}

// Summary is the headline view of a (possibly filtered) set of rows,
// used by the dashboard status panel.
type Summary struct {
	Records     int          `json:"records"`
	States      int          `json:"states"`
	Districts   int          `json:"districts"`
	HighRisk    int          `json:"high_risk"`
	TopVelocity *RegionMonth `json:"top_velocity,omitempty"`
}
