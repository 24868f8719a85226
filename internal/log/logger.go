// Package log wraps slog with a component field shared by all processes.
package log

import (
	"log/slog"
	"os"
)

// Setup initializes the default text logger at the given level and returns
// it. Every log line carries the component attribute.
func Setup(component string, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With("component", component)
	slog.SetDefault(logger)
	return logger
}

// LevelFromEnv maps LOG_LEVEL to a slog level, defaulting to info.
func LevelFromEnv() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
