// Package logging provides a custom slog handler that annotates log records
// with request-scoped context such as the URL path.
package logging

import (
	"context"
	"log/slog"

	"github.com/olegiv/payblog-go/internal/middleware"
)

// RequestPathHandler is a slog.Handler that wraps another handler and attaches
// the request path from the context to WARN and ERROR level records.
type RequestPathHandler struct {
	inner slog.Handler
	level slog.Level // Minimum level to annotate (default: WARN)
}

// NewRequestPathHandler creates a new RequestPathHandler that wraps the given
// handler. Records at WARN level and above gain a "path" attribute when the
// context carries a request path.
func NewRequestPathHandler(inner slog.Handler) *RequestPathHandler {
	return &RequestPathHandler{
		inner: inner,
		level: slog.LevelWarn,
	}
}

// NewRequestPathHandlerWithLevel creates a new RequestPathHandler with a
// custom minimum annotation level.
func NewRequestPathHandlerWithLevel(inner slog.Handler, level slog.Level) *RequestPathHandler {
	return &RequestPathHandler{
		inner: inner,
		level: level,
	}
}

// Enabled implements slog.Handler.
func (h *RequestPathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RequestPathHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level {
		if path := middleware.GetRequestPath(ctx); path != "" && !hasAttr(r, "path") {
			r = r.Clone()
			r.AddAttrs(slog.String("path", path))
		}
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *RequestPathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RequestPathHandler{
		inner: h.inner.WithAttrs(attrs),
		level: h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *RequestPathHandler) WithGroup(name string) slog.Handler {
	return &RequestPathHandler{
		inner: h.inner.WithGroup(name),
		level: h.level,
	}
}

// hasAttr reports whether the record already carries an attribute with the
// given key. Handlers after explicit "path" attributes must not duplicate it.
func hasAttr(r slog.Record, key string) bool {
	found := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			found = true
			return false
		}
		return true
	})
	return found
}
