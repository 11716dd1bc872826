package logger

import (
	"context"
	"log/slog"
	"slices"
)

type attrsKey struct{}

// WithAttrs returns a copy of ctx carrying attrs. Loggers built with
// [ContextAttrs] add them to every record logged with that context.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	prev := ContextAttrs(ctx)
	merged := make([]slog.Attr, 0, len(prev)+len(attrs))
	merged = append(merged, prev...)
	merged = append(merged, attrs...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

// ContextExtractor returns the attributes ctx contributes to a record.
type ContextExtractor func(ctx context.Context) []slog.Attr

// ContextAttrs is a ContextExtractor for attributes stored with [WithAttrs].
func ContextAttrs(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return attrs
}

// contextHandler runs its extractors on every record, so values put on the
// context after the logger was built are still logged.
type contextHandler struct {
	slog.Handler
	extract []ContextExtractor
}

// withContext returns h unchanged when no usable extractor is given.
func withContext(h slog.Handler, extractors []ContextExtractor) slog.Handler {
	extract := slices.DeleteFunc(slices.Clone(extractors), func(e ContextExtractor) bool { return e == nil })
	if len(extract) == 0 {
		return h
	}
	return &contextHandler{Handler: h, extract: extract}
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, extract := range h.extract {
		rec.AddAttrs(extract(ctx)...)
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extract: h.extract}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extract: h.extract}
}
