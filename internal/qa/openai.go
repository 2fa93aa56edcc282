package qa

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	openai "github.com/sashabaranov/go-openai"

	"finqa/internal/config"
	"finqa/internal/corpus"
	"finqa/internal/logging"
)

const (
	answerTemperature = 0.1
	maxAttempts       = 3
	retryBackoff      = 2 * time.Second
)

// chatClient is the slice of the OpenAI client the generator needs; tests
// substitute a stub.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIGenerator answers questions through the OpenAI chat-completions API.
type OpenAIGenerator struct {
	client  chatClient
	model   string
	logger  logging.Logger
	backoff time.Duration

	cache *lru.Cache[string, Prediction]

	mu    sync.Mutex
	usage TokenUsage
}

// NewOpenAIGenerator builds the production generator from configuration.
func NewOpenAIGenerator(cfg config.Config) (*OpenAIGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return newGenerator(openai.NewClientWithConfig(clientConfig), cfg.Model, cfg.AnswerCacheSize)
}

func newGenerator(client chatClient, model string, cacheSize int) (*OpenAIGenerator, error) {
	g := &OpenAIGenerator{
		client:  client,
		model:   model,
		logger:  logging.NewComponentLogger("qa"),
		backoff: retryBackoff,
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, Prediction](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create answer cache: %w", err)
		}
		g.cache = cache
	}
	return g, nil
}

// Answer asks the model one question over one document. Responses are cached
// by document and question so reruns over the same sample cost nothing.
func (g *OpenAIGenerator) Answer(ctx context.Context, doc *corpus.Document, question string) (Prediction, error) {
	cacheKey := doc.ID + "\x00" + question
	if g.cache != nil {
		if cached, ok := g.cache.Get(cacheKey); ok {
			cached.FromCache = true
			return cached, nil
		}
	}

	prompt := BuildPrompt(doc, question)
	g.logger.Debug("asking %s (prompt ~%d tokens): %s", g.model, CountTokens(prompt), question)

	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: answerTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	start := time.Now()
	resp, err := g.complete(ctx, req)
	latency := time.Since(start)
	if err != nil {
		return Prediction{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Prediction{}, fmt.Errorf("chat completion returned no choices")
	}

	usage := TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	g.mu.Lock()
	g.usage.Add(usage)
	g.mu.Unlock()

	content := resp.Choices[0].Message.Content
	final := ExtractFinalAnswer(content)
	if final == "" {
		g.logger.Warn("no final-answer marker in response for %q", question)
		final = strings.TrimSpace(content)
	}

	prediction := Prediction{
		Answer:       final,
		Reasoning:    strings.Join(ExtractReasoningSteps(content), "\n"),
		FullResponse: content,
		Source:       doc.Source(),
		Latency:      latency,
		Usage:        usage,
	}
	if g.cache != nil {
		g.cache.Add(cacheKey, prediction)
	}
	return prediction, nil
}

// complete retries transient failures with a flat backoff.
func (g *OpenAIGenerator) complete(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := g.client.CreateChatCompletion(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		g.logger.Warn("completion attempt %d/%d failed: %v", attempt, maxAttempts, err)
		if ctx.Err() != nil {
			break
		}
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return openai.ChatCompletionResponse{}, ctx.Err()
			case <-time.After(g.backoff):
			}
		}
	}
	return openai.ChatCompletionResponse{}, lastErr
}

// Usage returns the accumulated token usage.
func (g *OpenAIGenerator) Usage() TokenUsage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.usage
}

// ResetUsage clears the accumulated token usage before a fresh run.
func (g *OpenAIGenerator) ResetUsage() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.usage = TokenUsage{}
}
