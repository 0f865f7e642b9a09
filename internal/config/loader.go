package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CLARITY_CONFIG is set
//  3. env (prefix CLARITY_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("CLARITY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: CLARITY_ADDR, CLARITY_MODEL_PATH, ...
	// Map env keys like CLARITY_MODEL_PATH -> model_path (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("CLARITY_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "clarity_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ModelPath == "":
		return fmt.Errorf("%w: model_path must not be empty", ErrInvalidConfig)
	case c.RecordQueueSize < 1:
		return fmt.Errorf("%w: record_queue_size must be positive", ErrInvalidConfig)
	case c.RecordWriterCount < 1:
		return fmt.Errorf("%w: record_writer_count must be positive", ErrInvalidConfig)
	case c.MaxRecentLimit < 1:
		return fmt.Errorf("%w: max_recent_limit must be positive", ErrInvalidConfig)
	case c.ExplainMode != "heuristic" && c.ExplainMode != "attribution":
		return fmt.Errorf("%w: explain_mode must be heuristic or attribution", ErrInvalidConfig)
	}
	return nil
}
