// Package logging centralizes logger setup so every component logs with
// the same level and format, controlled by LOG_LEVEL and LOG_FORMAT.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup builds the process logger and installs it as slog's default.
// LOG_LEVEL: debug|info|warn|error (default info).
// LOG_FORMAT: json|text (default text). Output goes to stderr.
func Setup() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
