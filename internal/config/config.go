// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - Load layers a YAML file and PORTAL_ environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"runtime"

	"github.com/okian/portalrank/internal/domain/valuation"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory transfer queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of transfer workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets how many transfer IDs are remembered for idempotency.
	DedupeSize int `koanf:"dedupe_size"`

	// CacheSize bounds the team summary memo.
	CacheSize int `koanf:"cache_size"`

	// StandingsParallelism bounds concurrent team recomputes.
	StandingsParallelism int `koanf:"standings_parallelism"`

	// MaxRankingsLimit caps GET /rankings?limit.
	MaxRankingsLimit int `koanf:"max_rankings_limit"`

	// RosterFile is an optional CSV of transfers loaded at startup.
	RosterFile string `koanf:"roster_file"`

	// SampleData seeds the built-in sample league when no roster file is set.
	SampleData bool `koanf:"sample_data"`

	// SampleSeed salts the sample league generator.
	SampleSeed int64 `koanf:"sample_seed"`

	// Value curve parameters, in millions.
	ValueMin      float64 `koanf:"value_min"`
	ValueMax      float64 `koanf:"value_max"`
	ValueExponent float64 `koanf:"value_exponent"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		QueueSize:            10_000,
		WorkerCount:          runtime.NumCPU(),
		DedupeSize:           500_000,
		CacheSize:            4_096,
		StandingsParallelism: runtime.NumCPU(),
		MaxRankingsLimit:     100,
		SampleData:           true,
		ValueMin:             valuation.DefaultValueMin,
		ValueMax:             valuation.DefaultValueMax,
		ValueExponent:        valuation.DefaultValueExponent,
	}
}

// Curve returns the value curve described by the config.
func (c *Config) Curve() (valuation.Curve, error) {
	return valuation.NewCurve(c.ValueMin, c.ValueMax, c.ValueExponent)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	case c.StandingsParallelism <= 0:
		return fmt.Errorf("%w: standings_parallelism must be positive, got %d", ErrInvalidConfig, c.StandingsParallelism)
	case c.MaxRankingsLimit <= 0:
		return fmt.Errorf("%w: max_rankings_limit must be positive, got %d", ErrInvalidConfig, c.MaxRankingsLimit)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if _, err := c.Curve(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
