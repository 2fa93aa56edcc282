package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsProgrammerErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero top_k", func(c *Config) { c.TopK = 0 }},
		{"negative top_k", func(c *Config) { c.TopK = -3 }},
		{"zero close tolerance", func(c *Config) { c.CloseTolerance = 0 }},
		{"negative epsilon", func(c *Config) { c.ExactEpsilon = -1 }},
		{"zero minor cutoff", func(c *Config) { c.MinorErrorCutoff = 0 }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"blank model", func(c *Config) { c.Model = "  " }},
		{"zero keyword len", func(c *Config) { c.MinKeywordLen = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finqa-config.yaml")
	content := "model: o1\ntop_k: 3\nclose_tolerance: 0.05\nworkers: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "o1", cfg.Model)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, 0.05, cfg.CloseTolerance)
	assert.Equal(t, 2, cfg.Workers)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultMinorErrorCutoff, cfg.MinorErrorCutoff)
	assert.Equal(t, DefaultExtractionModel, cfg.ExtractionModel)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finqa-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_k: -1\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
