package metrics

import (
	"sort"
	"time"
)

// LatencyStats summarizes the per-question response latency series.
type LatencyStats struct {
	Mean   time.Duration `json:"mean"`
	Median time.Duration `json:"median"`
	Min    time.Duration `json:"min"`
	Max    time.Duration `json:"max"`
	P90    time.Duration `json:"p90"`
	P95    time.Duration `json:"p95"`
}

// LatencyStats computes latency statistics over the folded series; ok is
// false when no latencies were recorded.
func (r *AggregateReport) LatencyStats() (LatencyStats, bool) {
	if len(r.latencies) == 0 {
		return LatencyStats{}, false
	}

	sorted := make([]time.Duration, len(r.latencies))
	copy(sorted, r.latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}

	return LatencyStats{
		Mean:   sum / time.Duration(len(sorted)),
		Median: percentile(sorted, 50),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P90:    percentile(sorted, 90),
		P95:    percentile(sorted, 95),
	}, true
}

// percentile linearly interpolates between the two nearest ranks in a sorted
// series.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lower)
	return sorted[lower] + time.Duration(frac*float64(sorted[upper]-sorted[lower]))
}
