package logger

import (
	"context"
	"log/slog"
)

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(nopeHandler{})
}

type nopeHandler struct{}

func (nopeHandler) Enabled(context.Context, slog.Level) bool { return false }
func (nopeHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopeHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h nopeHandler) WithGroup(string) slog.Handler { return h }
