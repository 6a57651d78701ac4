// Package config defines process configuration and how it is loaded.
//
// Conventions:
// - New returns a Config holding every default.
// - Load layers .env, an optional YAML file and POOLPICK_ env vars on top.
// - Validation failures wrap ErrInvalidConfig; I/O and parse failures wrap
//   ErrLoadConfig.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches the logger to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxPicks caps the candidates kept by the scorer.
	MaxPicks int `koanf:"max_picks"`

	// HomeBonus is added to the home team's rating.
	HomeBonus float64 `koanf:"home_bonus"`

	// DefaultRating is used for teams missing from Ratings.
	DefaultRating float64 `koanf:"default_rating"`

	// WorkerCount sets the number of scoring workers. Zero scores inline.
	WorkerCount int `koanf:"worker_count"`

	// Seed drives the variance strategies when a request has none.
	Seed int64 `koanf:"seed"`

	// CombineMode is one of consensus, weighted, best.
	CombineMode string `koanf:"combine_mode"`

	// MergeMode is one of average, weighted, best.
	MergeMode string `koanf:"merge_mode"`

	// StrictSources rejects conflicting duplicate entries within a source.
	StrictSources bool `koanf:"strict_sources"`

	// Reallocate enables the value-driven reallocation pass.
	Reallocate bool `koanf:"reallocate"`

	// RateLimitRPS and RateLimitBurst bound API requests. Zero RPS disables
	// the limiter.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// Ratings maps team tokens to power ratings. Empty uses the built-in
	// table.
	Ratings map[string]float64 `koanf:"ratings"`

	// SourceWeights supplies weights for analysis sources that omit one.
	SourceWeights map[string]float64 `koanf:"source_weights"`
}

// New creates a Config with defaults. Context is accepted first to match
// Load.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		MaxPicks:       20,
		HomeBonus:      3,
		DefaultRating:  50,
		WorkerCount:    runtime.NumCPU(),
		Seed:           42,
		CombineMode:    "consensus",
		MergeMode:      "average",
		Reallocate:     true,
		RateLimitRPS:   50,
		RateLimitBurst: 100,
	}
}
