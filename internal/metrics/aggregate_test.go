package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finqa/internal/answer"
	"finqa/internal/classify"
	"finqa/internal/scoring"
)

func result(cat scoring.Category, qType classify.QuestionType, diff classify.Difficulty, latency time.Duration) Result {
	v := scoring.Verdict{Category: cat}
	if cat == scoring.CategoryIncorrect {
		v.ErrorKind = scoring.ErrorKindMajorCalc
	}
	return Result{Type: qType, Difficulty: diff, Verdict: v, Latency: latency}
}

func numericResult(cat scoring.Category, truth, pred float64) Result {
	return Result{
		Type:       classify.TypePercentage,
		Difficulty: classify.DifficultySimple,
		Verdict: scoring.Verdict{
			Category:    cat,
			GroundTruth: answer.Number(truth),
			Prediction:  answer.Number(pred),
		},
	}
}

func TestAggregateCounts(t *testing.T) {
	results := []Result{
		result(scoring.CategoryExactMatch, classify.TypeFactual, classify.DifficultySimple, time.Second),
		result(scoring.CategoryExactMatch, classify.TypePercentage, classify.DifficultyComplex, 2*time.Second),
		result(scoring.CategoryCloseMatch, classify.TypePercentage, classify.DifficultyComplex, 3*time.Second),
		result(scoring.CategoryIncorrect, classify.TypeChange, classify.DifficultyModerate, 4*time.Second),
	}
	report := Aggregate(results)

	require.Equal(t, 4, report.Total())
	assert.Equal(t, 2, report.CategoryCount(scoring.CategoryExactMatch))
	assert.Equal(t, 1, report.CategoryCount(scoring.CategoryCloseMatch))
	assert.Equal(t, 1, report.CategoryCount(scoring.CategoryIncorrect))

	// Counts must sum to the number of folded verdicts.
	sum := 0
	for _, cat := range []scoring.Category{scoring.CategoryExactMatch, scoring.CategoryCloseMatch, scoring.CategoryIncorrect} {
		sum += report.CategoryCount(cat)
	}
	assert.Equal(t, report.Total(), sum)

	accuracy, ok := report.Accuracy()
	require.True(t, ok)
	assert.InDelta(t, 75.0, accuracy, 1e-9)

	exactRate, ok := report.ExactMatchRate()
	require.True(t, ok)
	assert.InDelta(t, 50.0, exactRate, 1e-9)
}

func TestAggregateEmptyRun(t *testing.T) {
	report := Aggregate(nil)
	_, ok := report.Accuracy()
	assert.False(t, ok)
	_, ok = report.ExactMatchRate()
	assert.False(t, ok)
	_, _, ok = report.MAPE()
	assert.False(t, ok)
	_, ok = report.LatencyStats()
	assert.False(t, ok)
	_, ok = report.F1Score()
	assert.False(t, ok)
}

func TestStrataAccuracyAndNoData(t *testing.T) {
	results := []Result{
		result(scoring.CategoryExactMatch, classify.TypePercentage, classify.DifficultyComplex, 0),
		result(scoring.CategoryIncorrect, classify.TypePercentage, classify.DifficultyComplex, 0),
		result(scoring.CategoryCloseMatch, classify.TypeFactual, classify.DifficultySimple, 0),
	}
	report := Aggregate(results)

	byType := report.AccuracyByType()
	pct, ok := byType[classify.TypePercentage].Accuracy()
	require.True(t, ok)
	assert.InDelta(t, 50.0, pct, 1e-9)

	// Absent stratum reports "no data", not a division by zero.
	_, ok = byType[classify.TypeQuantity].Accuracy()
	assert.False(t, ok)

	byDiff := report.AccuracyByDifficulty()
	assert.Equal(t, 2, byDiff[classify.DifficultyComplex].Total)
	assert.Equal(t, 1, byDiff[classify.DifficultyComplex].Correct)
}

func TestErrorDistributionShares(t *testing.T) {
	mk := func(kind string) Result {
		return Result{Verdict: scoring.Verdict{Category: scoring.CategoryIncorrect, ErrorKind: kind}}
	}
	report := Aggregate([]Result{
		mk(scoring.ErrorKindMissingPercent),
		mk(scoring.ErrorKindMissingPercent),
		mk(scoring.ErrorKindMinorCalc),
		mk(scoring.ErrorKindMajorCalc),
	})
	dist := report.ErrorDistribution()
	assert.Equal(t, 2, dist[scoring.ErrorKindMissingPercent].Count)
	assert.InDelta(t, 50.0, dist[scoring.ErrorKindMissingPercent].Share, 1e-9)
	assert.InDelta(t, 25.0, dist[scoring.ErrorKindMinorCalc].Share, 1e-9)
}

func TestMAPEExcludesZeroGroundTruth(t *testing.T) {
	report := Aggregate([]Result{
		numericResult(scoring.CategoryCloseMatch, 100, 110), // 10% error
		numericResult(scoring.CategoryExactMatch, 50, 50),   // 0% error
		numericResult(scoring.CategoryIncorrect, 0, 999),    // excluded, any prediction
	})
	mape, excluded, ok := report.MAPE()
	require.True(t, ok)
	assert.Equal(t, 1, excluded)
	assert.InDelta(t, 5.0, mape, 1e-9)
}

func TestMAPEWithOnlyExclusions(t *testing.T) {
	report := Aggregate([]Result{numericResult(scoring.CategoryIncorrect, 0, 1)})
	_, excluded, ok := report.MAPE()
	assert.False(t, ok)
	assert.Equal(t, 1, excluded)
}

func TestFoldAssociativity(t *testing.T) {
	all := []Result{
		numericResult(scoring.CategoryExactMatch, 10, 10),
		numericResult(scoring.CategoryCloseMatch, 10, 10.05),
		numericResult(scoring.CategoryIncorrect, 10, 20),
		result(scoring.CategoryIncorrect, classify.TypeOther, classify.DifficultySimple, time.Second),
		result(scoring.CategoryExactMatch, classify.TypeChange, classify.DifficultyComplex, 2*time.Second),
	}
	full := Aggregate(all)
	left := Aggregate(all[:2])
	right := Aggregate(all[2:])

	for _, cat := range []scoring.Category{scoring.CategoryExactMatch, scoring.CategoryCloseMatch, scoring.CategoryIncorrect} {
		assert.Equal(t, full.CategoryCount(cat), left.CategoryCount(cat)+right.CategoryCount(cat), string(cat))
	}
	assert.Equal(t, full.Total(), left.Total()+right.Total())
}

func TestLatencyStats(t *testing.T) {
	results := make([]Result, 0, 10)
	for i := 1; i <= 10; i++ {
		results = append(results, result(scoring.CategoryExactMatch, classify.TypeFactual, classify.DifficultySimple, time.Duration(i)*time.Second))
	}
	report := Aggregate(results)
	stats, ok := report.LatencyStats()
	require.True(t, ok)

	assert.Equal(t, time.Second, stats.Min)
	assert.Equal(t, 10*time.Second, stats.Max)
	assert.Equal(t, 5500*time.Millisecond, stats.Mean)
	assert.Equal(t, 5500*time.Millisecond, stats.Median)
	// Linear interpolation between ranks: p90 of 1..10s sits at 9.1s.
	assert.InDelta(t, float64(9100*time.Millisecond), float64(stats.P90), float64(time.Millisecond))
	assert.InDelta(t, float64(9550*time.Millisecond), float64(stats.P95), float64(time.Millisecond))
}

func TestF1(t *testing.T) {
	assert.Equal(t, 0.0, F1(0, 0))
	assert.InDelta(t, 0.5, F1(0.5, 0.5), 1e-9)
	if f := F1(0.9, 0.6); math.Abs(f-0.72) > 1e-9 {
		t.Fatalf("F1(0.9, 0.6) = %v, want 0.72", f)
	}
}

func TestConfusionMatrixCountsMatch(t *testing.T) {
	report := Aggregate([]Result{
		result(scoring.CategoryExactMatch, classify.TypeFactual, classify.DifficultySimple, 0),
		result(scoring.CategoryIncorrect, classify.TypeFactual, classify.DifficultySimple, 0),
	})
	matrix := report.ConfusionMatrix()
	assert.Equal(t, 1, matrix["correct"][scoring.CategoryExactMatch])
	assert.Equal(t, 1, matrix["incorrect"][scoring.CategoryIncorrect])
	assert.Equal(t, 0, matrix["incorrect"][scoring.CategoryExactMatch])
}
