// Package metrics folds per-question verdicts into dataset-level statistics.
// Aggregation keeps raw counts and divides only when a statistic is requested,
// so re-aggregating any subset of results reproduces exactly what a full run
// would have reported for that subset.
package metrics

import (
	"time"

	"finqa/internal/classify"
	"finqa/internal/scoring"
)

// Result pairs one evaluated question with its verdict and measured latency.
type Result struct {
	Question   string                `json:"question"`
	Type       classify.QuestionType `json:"type"`
	Difficulty classify.Difficulty   `json:"difficulty"`
	Verdict    scoring.Verdict       `json:"verdict"`
	Latency    time.Duration         `json:"latency"`
}

// StratumStats holds the raw counts for one question-type or difficulty
// stratum.
type StratumStats struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// Accuracy returns the stratum accuracy in percent. ok is false when the
// stratum has no examples ("no data", never a division by zero).
func (s StratumStats) Accuracy() (float64, bool) {
	if s.Total == 0 {
		return 0, false
	}
	return float64(s.Correct) / float64(s.Total) * 100, true
}

// ErrorStat is one row of the error-kind frequency table.
type ErrorStat struct {
	Count int     `json:"count"`
	Share float64 `json:"share"` // share of all incorrect verdicts, in percent
}

type numericPair struct {
	truth float64
	pred  float64
}

// AggregateReport is the accumulated outcome of one evaluation run. It keeps
// raw counts only; every ratio is computed on demand.
type AggregateReport struct {
	total        int
	counts       map[scoring.Category]int
	byType       map[classify.QuestionType]StratumStats
	byDifficulty map[classify.Difficulty]StratumStats
	errorKinds   map[string]int

	numericPairs []numericPair
	mapeExcluded int

	latencies []time.Duration
}

// Aggregate folds a sequence of results into a report. The fold is a pure
// function of its input; folding disjoint subsets and summing their counts
// equals folding the full sequence.
func Aggregate(results []Result) *AggregateReport {
	r := &AggregateReport{
		counts:       make(map[scoring.Category]int),
		byType:       make(map[classify.QuestionType]StratumStats),
		byDifficulty: make(map[classify.Difficulty]StratumStats),
		errorKinds:   make(map[string]int),
	}
	for _, res := range results {
		r.fold(res)
	}
	return r
}

func (r *AggregateReport) fold(res Result) {
	r.total++
	r.counts[res.Verdict.Category]++

	typeStats := r.byType[res.Type]
	typeStats.Total++
	diffStats := r.byDifficulty[res.Difficulty]
	diffStats.Total++
	if res.Verdict.Correct() {
		typeStats.Correct++
		diffStats.Correct++
	}
	r.byType[res.Type] = typeStats
	r.byDifficulty[res.Difficulty] = diffStats

	if res.Verdict.Category == scoring.CategoryIncorrect {
		kind := res.Verdict.ErrorKind
		if kind == "" {
			kind = scoring.ErrorKindUnknown
		}
		r.errorKinds[kind]++
	}

	truth, pred := res.Verdict.GroundTruth, res.Verdict.Prediction
	if truth.IsNumeric() && pred.IsNumeric() {
		if truth.Value() == 0 {
			// Near-zero ground truths turn MAPE into noise; they are
			// excluded from the denominator and counted instead.
			r.mapeExcluded++
		} else {
			r.numericPairs = append(r.numericPairs, numericPair{truth: truth.Value(), pred: pred.Value()})
		}
	}

	r.latencies = append(r.latencies, res.Latency)
}

// Total returns the number of verdicts folded in.
func (r *AggregateReport) Total() int { return r.total }

// CategoryCount returns the verdict count for one category.
func (r *AggregateReport) CategoryCount(c scoring.Category) int { return r.counts[c] }

// CorrectCount returns exact plus close matches.
func (r *AggregateReport) CorrectCount() int {
	return r.counts[scoring.CategoryExactMatch] + r.counts[scoring.CategoryCloseMatch]
}

// Accuracy returns overall accuracy in percent; ok is false for an empty run.
func (r *AggregateReport) Accuracy() (float64, bool) {
	if r.total == 0 {
		return 0, false
	}
	return float64(r.CorrectCount()) / float64(r.total) * 100, true
}

// ExactMatchRate returns the exact-match rate in percent.
func (r *AggregateReport) ExactMatchRate() (float64, bool) {
	if r.total == 0 {
		return 0, false
	}
	return float64(r.counts[scoring.CategoryExactMatch]) / float64(r.total) * 100, true
}

// AccuracyByType returns the per-question-type strata.
func (r *AggregateReport) AccuracyByType() map[classify.QuestionType]StratumStats {
	out := make(map[classify.QuestionType]StratumStats, len(r.byType))
	for k, v := range r.byType {
		out[k] = v
	}
	return out
}

// AccuracyByDifficulty returns the per-difficulty strata.
func (r *AggregateReport) AccuracyByDifficulty() map[classify.Difficulty]StratumStats {
	out := make(map[classify.Difficulty]StratumStats, len(r.byDifficulty))
	for k, v := range r.byDifficulty {
		out[k] = v
	}
	return out
}

// ErrorDistribution returns the error-kind frequency table. Shares are
// relative to the incorrect verdict count.
func (r *AggregateReport) ErrorDistribution() map[string]ErrorStat {
	incorrect := r.counts[scoring.CategoryIncorrect]
	out := make(map[string]ErrorStat, len(r.errorKinds))
	for kind, count := range r.errorKinds {
		stat := ErrorStat{Count: count}
		if incorrect > 0 {
			stat.Share = float64(count) / float64(incorrect) * 100
		}
		out[kind] = stat
	}
	return out
}

// MAPE returns the Mean Absolute Percentage Error over examples where both
// sides are numeric and the ground truth is non-zero, the count of excluded
// zero-ground-truth examples, and ok=false when no eligible pair exists.
func (r *AggregateReport) MAPE() (mape float64, excluded int, ok bool) {
	if len(r.numericPairs) == 0 {
		return 0, r.mapeExcluded, false
	}
	sum := 0.0
	for _, p := range r.numericPairs {
		sum += abs((p.truth-p.pred)/p.truth) * 100
	}
	return sum / float64(len(r.numericPairs)), r.mapeExcluded, true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
