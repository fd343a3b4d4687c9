package config

import (
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
//  2. file (YAML) if CROSSTABLE_CONFIG is set
//  3. env (prefix CROSSTABLE_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CROSSTABLE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: CROSSTABLE_RESULTS_DIR, CROSSTABLE_ADDR, ...
	// Map env keys like CROSSTABLE_RESULTS_DIR -> results_dir (flat keys),
	// preserving underscores to match koanf tags on the struct.
	envProvider := env.Provider("CROSSTABLE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "crosstable_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.ResultsDir == "" {
		return nil, fmt.Errorf("%w: results_dir must not be empty", ErrInvalidConfig)
	}
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("%w: output_path must not be empty", ErrInvalidConfig)
	}
	if cfg.Serve && cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty when serve is enabled", ErrInvalidConfig)
	}
	return &cfg, nil
}
