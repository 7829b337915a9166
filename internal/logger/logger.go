// Package logger builds the slog logger used for subprocess and request
// diagnostics.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a text slog.Logger at the given level. Diagnostics go to
// stdout so they interleave with the pipeline progress output in CI logs.
func New(level string, output io.Writer) *slog.Logger {
	if output == nil {
		output = os.Stdout
	}

	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: lvl}))
}
