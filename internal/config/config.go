// Package config exposes the typed batch-run configuration loaded from
// YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"trade-backtest-lab/internal/domain"
)

// Batch describes one batch backtest run: which series to load and the
// strategy settings shared by all of them.
type Batch struct {
	// Series maps an instrument identifier to its daily-bar CSV file.
	Series map[string]string `yaml:"series"`

	Strategy domain.StrategyConfig `yaml:"strategy"`

	// TargetVol is the annualized target volatility; 0 means the default.
	TargetVol float64 `yaml:"target_vol"`

	// StopMultiplier enables the trailing stop when set.
	StopMultiplier *float64 `yaml:"stop_multiplier"`

	// StopLookback is the range-measure window for the stop machine.
	StopLookback int `yaml:"stop_lookback"`

	// Workers bounds the parallel fan-out; 0 picks a default.
	Workers int `yaml:"workers"`

	LogLevel string `yaml:"log_level"`
}

// Load reads and validates a batch configuration file.
func Load(path string) (*Batch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Batch
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Batch) validate() error {
	if len(c.Series) == 0 {
		return fmt.Errorf("config has no series")
	}
	if c.Strategy.Variant == "" {
		return fmt.Errorf("config has no strategy variant")
	}
	if c.TargetVol < 0 {
		return fmt.Errorf("target_vol must be non-negative, got %v", c.TargetVol)
	}
	if c.StopMultiplier != nil && *c.StopMultiplier <= 0 {
		return fmt.Errorf("stop_multiplier must be positive, got %v", *c.StopMultiplier)
	}
	return nil
}
