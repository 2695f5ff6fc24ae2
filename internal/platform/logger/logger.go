package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// New returns a text logger on w at the named level, tagged with a fresh
// run id so lines from one invocation can be grouped.
func New(w io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler).With("run_id", uuid.NewString())
}

// ParseLevel maps debug/info/warn/error to slog levels; anything else is warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
