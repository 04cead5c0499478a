// Package logging builds the slog loggers used by mcpm.
// Output goes through tint for colored, human-readable terminal logs.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

// TimeFormat is the timestamp layout for terminal logs.
const TimeFormat = "15:04:05"

// ParseLevel maps a level name to a slog.Level.
// Supported values: "debug", "info", "warn", "error" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether s names a known level. Empty is valid.
func ValidLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// New creates a tint-backed logger writing to w.
func New(level string, w io.Writer, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      ParseLevel(level),
		TimeFormat: TimeFormat,
		NoColor:    noColor,
	}))
}

// Install creates a logger with New and makes it the slog default.
func Install(level string, w io.Writer, noColor bool) *slog.Logger {
	logger := New(level, w, noColor)
	slog.SetDefault(logger)
	return logger
}
