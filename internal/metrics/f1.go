package metrics

import "finqa/internal/scoring"

// F1 returns the harmonic mean of precision and recall, zero when both are
// zero.
func F1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

// F1Score collapses the run to a single F1 figure, treating overall accuracy
// as precision and the exact-match rate as recall: it rewards runs that are
// both broadly right and precisely formatted. ok is false for an empty run.
func (r *AggregateReport) F1Score() (float64, bool) {
	accuracy, ok := r.Accuracy()
	if !ok {
		return 0, false
	}
	exact, _ := r.ExactMatchRate()
	return F1(accuracy/100, exact/100), true
}

// ConfusionMatrix tabulates the binary correct/incorrect outcome against the
// fine-grained verdict category.
func (r *AggregateReport) ConfusionMatrix() map[string]map[scoring.Category]int {
	matrix := map[string]map[scoring.Category]int{
		"correct": {
			scoring.CategoryExactMatch: r.counts[scoring.CategoryExactMatch],
			scoring.CategoryCloseMatch: r.counts[scoring.CategoryCloseMatch],
			scoring.CategoryIncorrect:  0,
		},
		"incorrect": {
			scoring.CategoryExactMatch: 0,
			scoring.CategoryCloseMatch: 0,
			scoring.CategoryIncorrect:  r.counts[scoring.CategoryIncorrect],
		},
	}
	return matrix
}
