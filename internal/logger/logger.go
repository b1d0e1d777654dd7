// Package logger provides structured logging setup for ResumeForge.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Options controls handler construction.
type Options struct {
	Level   string
	Service string
}

// New creates a *slog.Logger writing JSON to stdout with a "service"
// attribute on every record.
func New(opts Options) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
	})
	return slog.New(handler).With("service", opts.Service)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
