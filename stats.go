package warpsearch

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/warpsearch/lowerbound"
)

// SearchStats summarizes one search call: how many candidates were
// considered, how many reached the full DTW recurrence, and how many were
// pruned at each cascade level. Counters are purely diagnostic; search
// correctness never depends on them.
type SearchStats struct {
	Comparisons      int64
	DTWEvaluations   int64
	PrunedByKim      int64
	PrunedByPAA      int64
	PrunedByKeogh    int64
	PrunedByImproved int64
	Duration         time.Duration
}

// Pruned returns the total number of candidates skipped by the cascade.
func (s SearchStats) Pruned() int64 {
	return s.PrunedByKim + s.PrunedByPAA + s.PrunedByKeogh + s.PrunedByImproved
}

func (s *SearchStats) merge(other SearchStats) {
	s.Comparisons += other.Comparisons
	s.DTWEvaluations += other.DTWEvaluations
	s.PrunedByKim += other.PrunedByKim
	s.PrunedByPAA += other.PrunedByPAA
	s.PrunedByKeogh += other.PrunedByKeogh
	s.PrunedByImproved += other.PrunedByImproved
}

func (s *SearchStats) prune(level lowerbound.Level) {
	switch level {
	case lowerbound.LevelKim:
		s.PrunedByKim++
	case lowerbound.LevelPAA:
		s.PrunedByPAA++
	case lowerbound.LevelKeogh:
		s.PrunedByKeogh++
	case lowerbound.LevelImproved:
		s.PrunedByImproved++
	}
}

// StatsCollector receives per-call search statistics. Implement this
// interface to feed monitoring systems. Collectors must be safe for
// concurrent use; the engine reports once per search call, after all
// workers have joined, with per-worker counters already aggregated.
type StatsCollector interface {
	// RecordSearch is called once after each search operation.
	RecordSearch(stats SearchStats)
}

// NoopStatsCollector is a no-op implementation of StatsCollector.
// It is the engine default.
type NoopStatsCollector struct{}

func (NoopStatsCollector) RecordSearch(SearchStats) {}

// BasicStatsCollector provides simple in-memory aggregation across search
// calls. Useful for debugging and tests without external dependencies.
// To reset, construct a fresh collector.
type BasicStatsCollector struct {
	Searches         atomic.Int64
	Comparisons      atomic.Int64
	DTWEvaluations   atomic.Int64
	PrunedByKim      atomic.Int64
	PrunedByPAA      atomic.Int64
	PrunedByKeogh    atomic.Int64
	PrunedByImproved atomic.Int64
	TotalNanos       atomic.Int64
}

// RecordSearch implements StatsCollector.
func (c *BasicStatsCollector) RecordSearch(stats SearchStats) {
	c.Searches.Add(1)
	c.Comparisons.Add(stats.Comparisons)
	c.DTWEvaluations.Add(stats.DTWEvaluations)
	c.PrunedByKim.Add(stats.PrunedByKim)
	c.PrunedByPAA.Add(stats.PrunedByPAA)
	c.PrunedByKeogh.Add(stats.PrunedByKeogh)
	c.PrunedByImproved.Add(stats.PrunedByImproved)
	c.TotalNanos.Add(int64(stats.Duration))
}

// Snapshot returns the aggregated totals as a SearchStats value.
func (c *BasicStatsCollector) Snapshot() SearchStats {
	return SearchStats{
		Comparisons:      c.Comparisons.Load(),
		DTWEvaluations:   c.DTWEvaluations.Load(),
		PrunedByKim:      c.PrunedByKim.Load(),
		PrunedByPAA:      c.PrunedByPAA.Load(),
		PrunedByKeogh:    c.PrunedByKeogh.Load(),
		PrunedByImproved: c.PrunedByImproved.Load(),
		Duration:         time.Duration(c.TotalNanos.Load()),
	}
}
