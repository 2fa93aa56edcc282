// Package config holds the user-tunable settings for the financial QA
// evaluation harness. Thresholds and retrieval constants live here as named
// fields so deployments can recalibrate without touching scoring logic.
package config

import (
	"fmt"
	"strings"
)

const (
	DefaultModel           = "gpt-4o"
	DefaultExtractionModel = "gpt-3.5-turbo"
	DefaultBaseURL         = "https://api.openai.com/v1"

	// DefaultTopK is the number of documents retrieval hands to the model.
	DefaultTopK = 1

	// DefaultExactEpsilon bounds the magnitude difference still treated as an
	// exact match after normalization.
	DefaultExactEpsilon = 1e-9

	// DefaultCloseTolerance is the relative tolerance for close matches
	// (1%, matching the tuned production value).
	DefaultCloseTolerance = 0.01

	// DefaultMinorErrorCutoff separates minor from major calculation errors
	// by relative difference.
	DefaultMinorErrorCutoff = 0.10

	DefaultSampleSize    = 5
	DefaultWorkers       = 4
	DefaultAnswerCache   = 64
	DefaultOutputDir     = "outputs"
	DefaultMinKeywordLen = 3
)

// ModelCost holds the per-1K-token price for a model.
type ModelCost struct {
	Prompt     float64 `json:"prompt" yaml:"prompt" mapstructure:"prompt"`
	Completion float64 `json:"completion" yaml:"completion" mapstructure:"completion"`
}

// Config captures every runtime setting for an evaluation run.
type Config struct {
	// LLM settings (external answer-generation collaborator).
	APIKey          string `json:"api_key" yaml:"api_key" mapstructure:"api_key"`
	BaseURL         string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Model           string `json:"model" yaml:"model" mapstructure:"model"`
	ExtractionModel string `json:"extraction_model" yaml:"extraction_model" mapstructure:"extraction_model"`

	// Retrieval settings.
	TopK          int `json:"top_k" yaml:"top_k" mapstructure:"top_k"`
	MinKeywordLen int `json:"min_keyword_len" yaml:"min_keyword_len" mapstructure:"min_keyword_len"`

	// Scoring thresholds.
	ExactEpsilon     float64 `json:"exact_epsilon" yaml:"exact_epsilon" mapstructure:"exact_epsilon"`
	CloseTolerance   float64 `json:"close_tolerance" yaml:"close_tolerance" mapstructure:"close_tolerance"`
	MinorErrorCutoff float64 `json:"minor_error_cutoff" yaml:"minor_error_cutoff" mapstructure:"minor_error_cutoff"`

	// Run settings.
	SampleSize      int    `json:"sample_size" yaml:"sample_size" mapstructure:"sample_size"`
	Workers         int    `json:"workers" yaml:"workers" mapstructure:"workers"`
	ShuffleSeed     int64  `json:"shuffle_seed" yaml:"shuffle_seed" mapstructure:"shuffle_seed"`
	AnswerCacheSize int    `json:"answer_cache_size" yaml:"answer_cache_size" mapstructure:"answer_cache_size"`
	OutputDir       string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// CostPer1K maps model name to per-1K-token pricing for cost estimation.
	CostPer1K map[string]ModelCost `json:"cost_per_1k" yaml:"cost_per_1k" mapstructure:"cost_per_1k"`
}

// Default returns a Config populated with the documented defaults.
func Default() Config {
	return Config{
		BaseURL:          DefaultBaseURL,
		Model:            DefaultModel,
		ExtractionModel:  DefaultExtractionModel,
		TopK:             DefaultTopK,
		MinKeywordLen:    DefaultMinKeywordLen,
		ExactEpsilon:     DefaultExactEpsilon,
		CloseTolerance:   DefaultCloseTolerance,
		MinorErrorCutoff: DefaultMinorErrorCutoff,
		SampleSize:       DefaultSampleSize,
		Workers:          DefaultWorkers,
		AnswerCacheSize:  DefaultAnswerCache,
		OutputDir:        DefaultOutputDir,
		CostPer1K: map[string]ModelCost{
			"gpt-4o":        {Prompt: 0.0025, Completion: 0.01},
			"o1":            {Prompt: 0.015, Completion: 0.06},
			"gpt-3.5-turbo": {Prompt: 0.0005, Completion: 0.0015},
		},
	}
}

// Validate rejects programmer errors before any evaluation begins. Malformed
// domain data never fails; misconfiguration always does.
func (c Config) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.MinKeywordLen <= 0 {
		return fmt.Errorf("min_keyword_len must be positive, got %d", c.MinKeywordLen)
	}
	if c.ExactEpsilon < 0 {
		return fmt.Errorf("exact_epsilon must be non-negative, got %g", c.ExactEpsilon)
	}
	if c.CloseTolerance <= 0 {
		return fmt.Errorf("close_tolerance must be positive, got %g", c.CloseTolerance)
	}
	if c.MinorErrorCutoff <= 0 {
		return fmt.Errorf("minor_error_cutoff must be positive, got %g", c.MinorErrorCutoff)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}
