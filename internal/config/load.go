package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load resolves the configuration in precedence order: defaults, then an
// optional finqa-config file (current directory or $HOME), then FINQA_*
// environment variables. The result is validated before return.
func Load(configPath string) (Config, error) {
	v := viper.New()

	cfg := Default()
	setDefaults(v, cfg)

	if strings.TrimSpace(configPath) != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("finqa-config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("FINQA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing default config file is fine; an explicit path must exist.
		if configPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("api_key", cfg.APIKey)
	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("model", cfg.Model)
	v.SetDefault("extraction_model", cfg.ExtractionModel)
	v.SetDefault("top_k", cfg.TopK)
	v.SetDefault("min_keyword_len", cfg.MinKeywordLen)
	v.SetDefault("exact_epsilon", cfg.ExactEpsilon)
	v.SetDefault("close_tolerance", cfg.CloseTolerance)
	v.SetDefault("minor_error_cutoff", cfg.MinorErrorCutoff)
	v.SetDefault("sample_size", cfg.SampleSize)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("shuffle_seed", cfg.ShuffleSeed)
	v.SetDefault("answer_cache_size", cfg.AnswerCacheSize)
	v.SetDefault("output_dir", cfg.OutputDir)
}
