package config

import (
	"errors"
)

// Sentinel error kinds for this package, matchable with errors.Is from callers.
var (
	// ErrLoadConfig wraps failures reading or parsing a config source.
	ErrLoadConfig = errors.New("load config failed")

	// ErrInvalidConfig wraps validation failures after loading.
	ErrInvalidConfig = errors.New("invalid config")
)
