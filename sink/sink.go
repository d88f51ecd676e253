// Package sink defines the logging sink consumed by the lifecycle logger
// and the enqueue-side propagator. The base Sink is a plain message
// emitter; structured tags and scoped level narrowing are opt-in
// capabilities that sinks advertise by implementing TagSink and
// LevelSink. Callers gate enhanced behavior on the capability, never on
// a concrete type, so pairing joblog with a plain logger is harmless.
package sink

import (
	"context"
	"log/slog"
	"sort"
	"strings"
)

// Sink is the minimal logging sink: emit one message at a level.
type Sink interface {
	Emit(ctx context.Context, level slog.Level, msg string)
}

// TagSink is the structured-tag capability. Sinks that implement it
// receive the per-record tag set alongside the message.
type TagSink interface {
	Sink

	EmitTagged(ctx context.Context, level slog.Level, msg string, tags map[string]any)
}

// LevelSink is the scoped level-narrowing capability. WithMinLevel
// returns a derived sink whose emissions below level are dropped; the
// receiver is unchanged, so narrowing is naturally scoped to wherever
// the derived sink is carried.
type LevelSink interface {
	Sink

	MinLevel() slog.Level
	WithMinLevel(level slog.Level) Sink
}

// HasTags reports whether s is structured-tag-capable.
func HasTags(s Sink) bool {
	_, ok := s.(TagSink)

	return ok
}

// Emit sends one record through s, using the tagged form when s supports
// it and tags are present. A nil sink is a no-op.
func Emit(ctx context.Context, s Sink, level slog.Level, msg string, tags map[string]any) {
	if s == nil {
		return
	}

	if ts, ok := s.(TagSink); ok && len(tags) > 0 {
		ts.EmitTagged(ctx, level, msg, tags)

		return
	}

	s.Emit(ctx, level, msg)
}

// ParseLevel maps a descriptor level string to an slog.Level.
// Unrecognized or empty strings report false.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error", "fatal":
		return slog.LevelError, true
	default:
		return 0, false
	}
}

// sortedKeys returns the tag keys in sorted order for deterministic output.
func sortedKeys(tags map[string]any) []string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

type ctxKey struct{}

// ContextWith carries a sink on the context. The lifecycle logger uses
// this to scope a level-narrowed sink to one job execution.
func ContextWith(ctx context.Context, s Sink) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the sink carried by ctx, or fallback when none is.
func FromContext(ctx context.Context, fallback Sink) Sink {
	if s, ok := ctx.Value(ctxKey{}).(Sink); ok {
		return s
	}

	return fallback
}
