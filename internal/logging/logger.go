// Package logging builds the slog logger used by the langtable command.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/jacoelho/langtable/internal/config"
)

// NewLogger creates a *slog.Logger writing to w based on cfg.
//
// Format "json" produces JSON output; anything else produces text.
// Level is one of debug, info, warn, error (case-insensitive); defaults to info.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to its slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
