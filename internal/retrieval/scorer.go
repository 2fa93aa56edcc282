package retrieval

import (
	"strings"

	"finqa/internal/corpus"
)

// Weights control how much a term occurrence contributes per document section.
// Table cells outweigh prose because the quantities being asked about almost
// always live in the table; the document's own question is the strongest
// signal of all.
type Weights struct {
	Question float64
	Table    float64
	Prose    float64
}

// DefaultWeights returns the tuned production weights.
func DefaultWeights() Weights {
	return Weights{Question: 10, Table: 5, Prose: 1}
}

// Score returns the weighted occurrence count of the query terms across the
// document. Matching is whole-token and case-insensitive, consistent across
// every section so rankings are comparable corpus-wide. Always non-negative;
// an empty term set scores zero.
func Score(doc *corpus.Document, terms []string, w Weights) float64 {
	if len(terms) == 0 {
		return 0
	}

	question := ""
	if doc.QA != nil {
		question = doc.QA.Question
	}
	questionCounts := tokenCounts(tokenize(question))

	tableTokens := make([]string, 0, 64)
	for _, row := range doc.Table {
		for _, cell := range row {
			tableTokens = append(tableTokens, tokenize(cell)...)
		}
	}
	tableCounts := tokenCounts(tableTokens)

	prose := strings.Join(doc.PreText, " ") + " " + strings.Join(doc.PostText, " ")
	proseCounts := tokenCounts(tokenize(prose))

	score := 0.0
	for _, term := range terms {
		score += w.Question * float64(questionCounts[term])
		score += w.Table * float64(tableCounts[term])
		score += w.Prose * float64(proseCounts[term])
	}
	return score
}

func tokenCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}
