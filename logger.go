package main

import (
	"io"
	"log/slog"
	"os"
)

// newLogger builds the JSON structured logger used across the pipeline.
func newLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
