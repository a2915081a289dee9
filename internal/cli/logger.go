package cli

import (
	"io"
	"log/slog"
	"slices"
)

var validLevels = []string{"debug", "info", "warn", "error"}

func isValidLevel(level string) bool {
	return slices.Contains(validLevels, level)
}

// NewLogger - JSON logger at the configured level.
func NewLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level

	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}
