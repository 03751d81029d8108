// Package logging builds the structured logger shared by the converter.
package logging

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// New returns a text logger writing to w. Debug lowers the level from Info
// to Debug. Every record carries the run id; an empty runID gets a fresh one.
func New(w io.Writer, debug bool, runID string) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if runID == "" {
		runID = NewRunID()
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("run", runID)
}

// NewRunID returns a random identifier for one invocation.
func NewRunID() string {
	return uuid.NewString()
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
