// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"

	"github.com/mirzakhani/gamerank/internal/domain/comparison"
	"github.com/mirzakhani/gamerank/internal/domain/predict"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory prediction job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of prediction workers.
	WorkerCount int `koanf:"worker_count"`

	// SessionCapacity bounds concurrent comparison sessions.
	SessionCapacity int `koanf:"session_capacity"`

	// MaxComparisons caps the per-session comparison budget.
	MaxComparisons int `koanf:"max_comparisons"`

	// MinRankedForPredict is the ranked-corpus floor for predictions.
	MinRankedForPredict int `koanf:"min_ranked_for_predict"`

	// MinTasteMatch is the friend-tier taste match floor.
	MinTasteMatch float64 `koanf:"min_taste_match"`

	// MaxListLimit caps GET /rankings/{owner}?limit.
	MaxListLimit int `koanf:"max_list_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		QueueSize:           10_000,
		WorkerCount:         runtime.NumCPU() * 2,
		SessionCapacity:     10_000,
		MaxComparisons:      comparison.DefaultMaxComparisons,
		MinRankedForPredict: predict.DefaultMinRanked,
		MinTasteMatch:       predict.DefaultMinTasteMatch,
		MaxListLimit:        500,
	}
}
