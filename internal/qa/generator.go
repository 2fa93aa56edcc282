// Package qa wraps the language-model collaborator that actually answers
// questions. The evaluation core only consumes the Prediction it returns; all
// prompt construction, retries, and cost tracking stay behind this boundary.
package qa

import (
	"context"
	"time"

	"finqa/internal/corpus"
)

// TokenUsage accumulates prompt/completion token counts across calls.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add merges another usage sample into the accumulator.
func (u *TokenUsage) Add(other TokenUsage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// Prediction is one model answer with its provenance and cost.
type Prediction struct {
	Answer       string        `json:"answer"`
	Reasoning    string        `json:"reasoning"`
	FullResponse string        `json:"full_response"`
	Source       string        `json:"source"`
	Latency      time.Duration `json:"latency"`
	Usage        TokenUsage    `json:"usage"`
	FromCache    bool          `json:"from_cache,omitempty"`
}

// Generator produces a raw answer for a question over a document.
type Generator interface {
	Answer(ctx context.Context, doc *corpus.Document, question string) (Prediction, error)
}
