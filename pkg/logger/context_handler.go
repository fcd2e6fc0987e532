package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor turns a value carried by the context into a log attribute.
// formapi.RequestIDExtractor is the one formkit binaries install: every record
// logged with a request context gets its request_id.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler runs the extractors when a record is handled, not when the
// logger is built, so one logger serves every request.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func newContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	kept := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			kept = append(kept, ex)
		}
	}
	if len(kept) == 0 {
		return next
	}
	return &contextHandler{next: next, extractors: kept}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle adds the extracted attributes to a copy of rec. Extractors that find
// nothing in ctx, e.g. outside an HTTP request, add nothing.
func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	rec = rec.Clone()
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
