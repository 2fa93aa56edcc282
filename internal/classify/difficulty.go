package classify

import (
	"regexp"
	"strings"
)

// Difficulty buckets a question by the amount of reasoning it requires.
type Difficulty string

const (
	DifficultySimple   Difficulty = "simple"
	DifficultyModerate Difficulty = "moderate"
	DifficultyComplex  Difficulty = "complex"
)

var operationKeywords = []string{
	"increase", "decrease", "change", "growth", "difference",
	"percentage", "percent", "ratio", "compare",
	"total", "sum", "average", "mean", "median",
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

var complexPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(difference|change).+between`),
	regexp.MustCompile(`compare.+and`),
	regexp.MustCompile(`calculate.+(percentage|percent|ratio)`),
	regexp.MustCompile(`what.+(percentage|percent)`),
	regexp.MustCompile(`how much did.+(change|increase|decrease)`),
	regexp.MustCompile(`year(-|\s)over(-|\s)year`),
}

// QuestionDifficulty estimates difficulty from the number of implied
// operations, multi-year references, and multi-step phrasing.
func QuestionDifficulty(question string) Difficulty {
	lower := strings.ToLower(question)

	operations := 0
	for _, keyword := range operationKeywords {
		if strings.Contains(lower, keyword) {
			operations++
		}
	}

	multipleYears := len(yearPattern.FindAllString(question, -1)) > 1

	complexPhrasing := false
	for _, pattern := range complexPatterns {
		if pattern.MatchString(lower) {
			complexPhrasing = true
			break
		}
	}

	switch {
	case operations > 1 || multipleYears || complexPhrasing:
		return DifficultyComplex
	case operations == 1:
		return DifficultyModerate
	default:
		return DifficultySimple
	}
}
