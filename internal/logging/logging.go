// Package logging provides helpers for structured, colorized logging to stderr.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// NewLogger constructs a slog.Logger writing to w with a tint handler.
// Logs go to stderr in practice so stdout stays machine-parseable for the
// invoking orchestrator.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level: level,
	})

	return slog.New(handler)
}
