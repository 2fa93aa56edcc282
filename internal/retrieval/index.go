package retrieval

import (
	"sort"

	"finqa/internal/corpus"
)

// Index is a term → document inverted index that answers the same ranking
// contract as Ranker.RankScored without rescanning the corpus per query.
// Worth building once the corpus outgrows linear scans; scores and ordering
// are identical to the scan path.
type Index struct {
	docs     []*corpus.Document
	postings map[string][]posting
}

type posting struct {
	ord    int
	weight float64
}

// BuildIndex tokenizes every document once and records the weighted occurrence
// mass per term and document.
func BuildIndex(docs []*corpus.Document, weights Weights) *Index {
	idx := &Index{
		docs:     docs,
		postings: make(map[string][]posting),
	}

	for ord, doc := range docs {
		weightByTerm := make(map[string]float64)

		question := ""
		if doc.QA != nil {
			question = doc.QA.Question
		}
		for term, count := range tokenCounts(tokenize(question)) {
			weightByTerm[term] += weights.Question * float64(count)
		}
		for _, row := range doc.Table {
			for _, cell := range row {
				for term, count := range tokenCounts(tokenize(cell)) {
					weightByTerm[term] += weights.Table * float64(count)
				}
			}
		}
		for _, line := range doc.PreText {
			for term, count := range tokenCounts(tokenize(line)) {
				weightByTerm[term] += weights.Prose * float64(count)
			}
		}
		for _, line := range doc.PostText {
			for term, count := range tokenCounts(tokenize(line)) {
				weightByTerm[term] += weights.Prose * float64(count)
			}
		}

		for term, weight := range weightByTerm {
			idx.postings[term] = append(idx.postings[term], posting{ord: ord, weight: weight})
		}
	}
	return idx
}

// Rank returns at most k documents in descending score order, ties broken by
// corpus order. Matches Ranker.Rank for the same weights.
func (idx *Index) Rank(terms []string, k int) []ScoredDocument {
	if k <= 0 {
		return nil
	}

	scores := make(map[int]float64)
	for _, term := range terms {
		for _, p := range idx.postings[term] {
			scores[p.ord] += p.weight
		}
	}

	// Zero-score documents still participate so short corpora behave exactly
	// like the scan path.
	scored := make([]ScoredDocument, len(idx.docs))
	for ord, doc := range idx.docs {
		scored[ord] = ScoredDocument{Doc: doc, Score: scores[ord]}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
