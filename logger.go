package main

import (
	"io"
	"log/slog"
)

// NewLogger returns a structured JSON logger at the given level. The scanner
// logs to stderr so stdout stays clean for redirected output.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
