package scoring

import (
	"fmt"
	"math"

	"finqa/internal/answer"
)

// Thresholds are the named tuning constants for match classification. The
// defaults mirror the calibrated production values; treat them as
// configuration, not fixed truths.
type Thresholds struct {
	// ExactEpsilon bounds the magnitude difference still counted as exact.
	ExactEpsilon float64
	// CloseTolerance is the relative tolerance band for close matches.
	CloseTolerance float64
	// MinorErrorCutoff splits minor from major calculation errors by
	// relative difference.
	MinorErrorCutoff float64
}

// DefaultThresholds returns the documented threshold pair plus error cutoff.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ExactEpsilon:     1e-9,
		CloseTolerance:   0.01,
		MinorErrorCutoff: 0.10,
	}
}

// Validate rejects unusable thresholds at construction time.
func (t Thresholds) Validate() error {
	if t.ExactEpsilon < 0 {
		return fmt.Errorf("exact epsilon must be non-negative, got %g", t.ExactEpsilon)
	}
	if t.CloseTolerance <= 0 {
		return fmt.Errorf("close tolerance must be positive, got %g", t.CloseTolerance)
	}
	if t.MinorErrorCutoff <= 0 {
		return fmt.Errorf("minor error cutoff must be positive, got %g", t.MinorErrorCutoff)
	}
	return nil
}

// Classifier compares normalized predictions against ground truth.
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier constructs a Classifier, failing on invalid thresholds.
func NewClassifier(thresholds Thresholds) (*Classifier, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid thresholds: %w", err)
	}
	return &Classifier{thresholds: thresholds}, nil
}

// Classify normalizes both raw strings and assigns a verdict.
func (c *Classifier) Classify(groundTruthRaw, predictionRaw string) Verdict {
	return c.ClassifyValues(answer.Normalize(groundTruthRaw), answer.Normalize(predictionRaw))
}

// ClassifyValues assigns a verdict for already-normalized values, applying
// the match rules in priority order.
func (c *Classifier) ClassifyValues(truth, pred answer.NormalizedValue) Verdict {
	v := Verdict{GroundTruth: truth, Prediction: pred}

	// Both unparseable: only byte-identical cleaned strings match.
	if !truth.IsNumeric() && !pred.IsNumeric() {
		if truth.Text() == pred.Text() {
			v.Category = CategoryExactMatch
			return v
		}
		v.Category = CategoryIncorrect
		v.ErrorKind = ErrorKindUnknown
		return v
	}

	// One side unparseable: the dominant failure mode is a percentage whose
	// "%" never survived into the prediction, recognizable when the fallback
	// still carries the right digits.
	if !truth.IsNumeric() || !pred.IsNumeric() {
		v.Category = CategoryIncorrect
		fallback, numeric := truth, pred
		if !pred.IsNumeric() {
			fallback, numeric = pred, truth
		}
		if numeric.Kind() == answer.KindPercent &&
			answer.Digits(fallback.Text()) != "" &&
			answer.Digits(fallback.Text()) == answer.Digits(numeric.String()) {
			v.ErrorKind = ErrorKindMissingPercent
		} else {
			v.ErrorKind = ErrorKindUnparseable
		}
		return v
	}

	diff := math.Abs(truth.Value() - pred.Value())
	relDiff := relativeDifference(truth.Value(), pred.Value())

	// Equal magnitude but only one side tagged as a percentage.
	if truth.Kind() != pred.Kind() && diff <= c.thresholds.ExactEpsilon {
		v.Category = CategoryIncorrect
		v.ErrorKind = ErrorKindMissingPercent
		return v
	}

	if truth.Kind() == pred.Kind() && diff <= c.thresholds.ExactEpsilon {
		v.Category = CategoryExactMatch
		return v
	}

	pctDiff := relDiff * 100
	v.AbsoluteDifference = &diff
	v.PercentDifference = &pctDiff

	if truth.Kind() == pred.Kind() && relDiff <= c.thresholds.CloseTolerance {
		v.Category = CategoryCloseMatch
		return v
	}

	v.Category = CategoryIncorrect
	if relDiff < c.thresholds.MinorErrorCutoff {
		v.ErrorKind = ErrorKindMinorCalc
	} else {
		v.ErrorKind = ErrorKindMajorCalc
	}
	return v
}

// relativeDifference is |truth-pred| scaled by the larger magnitude, so sign
// flips of equal magnitude register as a 200% difference.
func relativeDifference(truth, pred float64) float64 {
	diff := math.Abs(truth - pred)
	if diff == 0 {
		return 0
	}
	denom := math.Max(math.Abs(truth), math.Abs(pred))
	if denom == 0 {
		return 0
	}
	return diff / denom
}
