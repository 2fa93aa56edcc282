package retrieval

import (
	"fmt"
	"sort"

	"finqa/internal/corpus"
)

// ScoredDocument pairs a document with its relevance score during ranking.
type ScoredDocument struct {
	Doc   *corpus.Document
	Score float64
}

// Ranker orders a corpus by keyword relevance and returns the top K documents.
type Ranker struct {
	k       int
	weights Weights
}

// NewRanker constructs a Ranker. K must be positive; this is a programmer
// error and fails at construction, before any evaluation begins.
func NewRanker(k int, weights Weights) (*Ranker, error) {
	if k <= 0 {
		return nil, fmt.Errorf("ranker k must be positive, got %d", k)
	}
	return &Ranker{k: k, weights: weights}, nil
}

// RankScored scores every document against the term set and returns at most K
// results in descending score order. Ties keep original corpus order, so a
// given corpus and term set always produce the same ranking. An empty corpus
// returns an empty slice.
func (r *Ranker) RankScored(docs []*corpus.Document, terms []string) []ScoredDocument {
	scored := make([]ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		scored = append(scored, ScoredDocument{Doc: doc, Score: Score(doc, terms, r.weights)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > r.k {
		scored = scored[:r.k]
	}
	return scored
}

// Rank is RankScored with the transient scores discarded.
func (r *Ranker) Rank(docs []*corpus.Document, terms []string) []*corpus.Document {
	scored := r.RankScored(docs, terms)
	out := make([]*corpus.Document, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.Doc)
	}
	return out
}

// RankQuestion extracts keywords from the question and ranks the corpus.
func (r *Ranker) RankQuestion(docs []*corpus.Document, question string, opts KeywordOptions) []*corpus.Document {
	return r.Rank(docs, ExtractKeywords(question, opts))
}
