// Package config reads jobline settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/jobline/assign"
	"github.com/katalvlaran/jobline/internal/logging"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Config holds process-wide settings.
type Config struct {
	LogLevel         string
	LogFormat        string
	Addr             string
	Strategy         string
	CacheLimit       int
	MetricsNamespace string
}

// Load reads the JOBLINE_* variables, falling back to defaults for unset keys.
// The result is validated before it is returned.
func Load() (Config, error) {
	limit, err := strconv.Atoi(getenv("JOBLINE_CACHE_LIMIT", "1024"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: JOBLINE_CACHE_LIMIT: %w", ErrInvalidConfig, err)
	}

	cfg := Config{
		LogLevel:         getenv("JOBLINE_LOG_LEVEL", "info"),
		LogFormat:        getenv("JOBLINE_LOG_FORMAT", "text"),
		Addr:             getenv("JOBLINE_ADDR", ":8080"),
		Strategy:         getenv("JOBLINE_STRATEGY", assign.Tabulation.String()),
		CacheLimit:       limit,
		MetricsNamespace: getenv("JOBLINE_METRICS_NAMESPACE", "jobline"),
	}

	return cfg, cfg.Validate()
}

// Validate checks every field and reports the first problem found.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if _, err := assign.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.CacheLimit < 0 {
		return fmt.Errorf("%w: cache limit %d < 0", ErrInvalidConfig, c.CacheLimit)
	}
	if c.MetricsNamespace == "" {
		return fmt.Errorf("%w: empty metrics namespace", ErrInvalidConfig)
	}

	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
