package tagctx

import (
	"context"
	"log/slog"
	"sort"
)

// Handler is an slog.Handler middleware that stamps the effective tag set
// from the record's context onto every record. Tags are appended as
// attributes in sorted key order so output is deterministic.
//
// Wrap any handler:
//
//	logger := slog.New(tagctx.NewHandler(slog.NewJSONHandler(os.Stdout, nil)))
type Handler struct {
	inner slog.Handler
}

// NewHandler wraps inner with tag stamping.
func NewHandler(inner slog.Handler) *Handler {
	return &Handler{inner: inner}
}

// Enabled reports whether the inner handler handles records at the given level.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle appends the context's effective tags to the record and delegates.
func (h *Handler) Handle(ctx context.Context, rec slog.Record) error {
	tags := All(ctx)
	if len(tags) > 0 {
		keys := make([]string, 0, len(tags))
		for k := range tags {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			rec.AddAttrs(slog.Any(k, tags[k]))
		}
	}

	return h.inner.Handle(ctx, rec)
}

// WithAttrs returns a Handler whose inner handler carries the attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a Handler whose inner handler opens the group.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name)}
}
