// Package scoring classifies a normalized prediction against a normalized
// ground truth into a verdict, the unit every aggregate statistic is built
// from. Classification is pure: the same inputs and thresholds always produce
// the same verdict.
package scoring

import "finqa/internal/answer"

// Category is the top-level verdict outcome.
type Category string

const (
	CategoryExactMatch Category = "exact_match"
	CategoryCloseMatch Category = "close_match"
	CategoryIncorrect  Category = "incorrect"
)

// Error kinds label why an incorrect verdict occurred.
const (
	ErrorKindUnparseable    = "unparseable answer"
	ErrorKindMissingPercent = "missing percentage symbol"
	ErrorKindMinorCalc      = "minor calculation error"
	ErrorKindMajorCalc      = "major calculation error"
	ErrorKindUnknown        = "unknown error type"
)

// Verdict is the classified outcome for one answered question. Created once
// per evaluation, never mutated.
type Verdict struct {
	Category  Category `json:"category"`
	ErrorKind string   `json:"error_kind,omitempty"`

	// Differences are recorded whenever both sides are numeric and differ.
	AbsoluteDifference *float64 `json:"absolute_difference,omitempty"`
	PercentDifference  *float64 `json:"percent_difference,omitempty"`

	GroundTruth answer.NormalizedValue `json:"-"`
	Prediction  answer.NormalizedValue `json:"-"`
}

// Correct reports whether the verdict counts toward overall accuracy.
func (v Verdict) Correct() bool {
	return v.Category == CategoryExactMatch || v.Category == CategoryCloseMatch
}
