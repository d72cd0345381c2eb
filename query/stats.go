package query

import "go.uber.org/atomic"

// Stats counts compiler activity since the process started.
type Stats struct {
	compiled atomic.Int64
	dropped  atomic.Int64
	searches atomic.Int64
	invalid  atomic.Int64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Compiled       int64 `json:"compiled"`
	DroppedClauses int64 `json:"droppedClauses"`
	Searches       int64 `json:"searches"`
	InvalidFilters int64 `json:"invalidFilters"`
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Compiled:       s.compiled.Load(),
		DroppedClauses: s.dropped.Load(),
		Searches:       s.searches.Load(),
		InvalidFilters: s.invalid.Load(),
	}
}
