// Package corpus loads and formats the financial document dataset: FinQA-style
// records mixing prose (pre/post text) with a table, each optionally carrying a
// question/answer pair for evaluation.
package corpus

import "strings"

// QA is the question/ground-truth pair attached to a document.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Document is one financial filing excerpt. Immutable once loaded.
type Document struct {
	ID       string     `json:"id"`
	PreText  []string   `json:"pre_text"`
	Table    [][]string `json:"table"`
	PostText []string   `json:"post_text"`
	QA       *QA        `json:"qa,omitempty"`
}

// HasQA reports whether the document carries a usable question/answer pair.
func (d *Document) HasQA() bool {
	return d.QA != nil &&
		strings.TrimSpace(d.QA.Question) != "" &&
		strings.TrimSpace(d.QA.Answer) != ""
}

// Source returns a human-readable reference for the document.
func (d *Document) Source() string {
	if d.ID != "" {
		return "Document ID: " + d.ID
	}
	return "Source: Unknown document"
}
