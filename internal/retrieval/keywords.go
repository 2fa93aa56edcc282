// Package retrieval selects the document shown to the model for a question.
// Matching is keyword overlap only: questions are tokenized into salient terms
// and documents are ranked by weighted term-occurrence counts.
package retrieval

import (
	"regexp"
	"strings"
)

// DefaultMinTokenLen drops very short tokens that carry no retrieval signal.
const DefaultMinTokenLen = 3

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// defaultStopWords are high-frequency English words excluded from keyword sets.
var defaultStopWords = buildStopWords(
	"a", "about", "above", "after", "again", "against", "all", "and", "any",
	"are", "because", "been", "before", "being", "below", "between", "both",
	"but", "can", "did", "does", "doing", "down", "during", "each", "few",
	"for", "from", "further", "had", "has", "have", "having", "her", "here",
	"hers", "him", "his", "how", "into", "its", "itself", "just", "more",
	"most", "not", "now", "off", "once", "only", "other", "our", "ours",
	"out", "over", "own", "same", "she", "should", "some", "such", "than",
	"that", "the", "their", "theirs", "them", "then", "there", "these",
	"they", "this", "those", "through", "too", "under", "until", "very",
	"was", "were", "what", "when", "where", "which", "while", "who", "whom",
	"why", "will", "with", "would", "you", "your", "yours",
)

func buildStopWords(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// KeywordOptions controls keyword extraction behavior.
// MinTokenLen <= 0 uses DefaultMinTokenLen. Nil StopWords uses the built-in set.
type KeywordOptions struct {
	MinTokenLen int
	StopWords   map[string]struct{}
}

// ExtractKeywords tokenizes a question into distinct, lowercased search terms
// with stopwords removed. Four-digit years are always kept regardless of the
// stopword and length filters; they anchor most financial lookups. Empty input
// yields an empty set. Output order is first-seen, for reproducible ranking.
func ExtractKeywords(text string, opts KeywordOptions) []string {
	minTokenLen := opts.MinTokenLen
	if minTokenLen <= 0 {
		minTokenLen = DefaultMinTokenLen
	}
	stopWords := opts.StopWords
	if stopWords == nil {
		stopWords = defaultStopWords
	}

	fields := tokenize(text)
	keywords := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		if len(field) < minTokenLen {
			continue
		}
		if _, ok := stopWords[field]; ok {
			continue
		}
		if seen[field] {
			continue
		}
		seen[field] = true
		keywords = append(keywords, field)
	}

	for _, year := range yearPattern.FindAllString(text, -1) {
		if !seen[year] {
			seen[year] = true
			keywords = append(keywords, year)
		}
	}
	return keywords
}

// tokenize splits text into lowercased alphanumeric tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			return false
		}
		if r >= '0' && r <= '9' {
			return false
		}
		return true
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		lower := strings.ToLower(field)
		if lower == "" {
			continue
		}
		tokens = append(tokens, lower)
	}
	return tokens
}
