// Package logging builds the structured loggers used by the jobline
// runner, HTTP façade and CLI. The algorithm packages never log.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var (
	// ErrInvalidLevel is returned for a level other than debug, info, warn or error.
	ErrInvalidLevel = errors.New("logging: invalid level")

	// ErrInvalidFormat is returned for a format other than text or json.
	ErrInvalidFormat = errors.New("logging: invalid format")
)

// ParseLevel maps a level name (case-insensitive) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
}

// New creates a slog logger writing to w.
//
// Parameters:
//   - w: destination, usually os.Stderr
//   - level: debug | info | warn | error
//   - format: text | json
//
// Example:
//
//	logger, err := logging.New(os.Stderr, "debug", "json")
//	logger.Info("solve finished", "instance", "line-3x2", "min_time", 15)
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}

// Discard returns a logger that drops every record. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
