// Package tagctx carries ambient logging tags on a context.Context as a
// stack of key→value frames. Each derived context pushes one frame;
// lookups resolve innermost-frame-first. Because frames live on the
// context, every concurrent execution flow gets an independent stack and
// a frame can never leak past the scope that pushed it.
package tagctx

import (
	"context"
	"sort"
)

type ctxKey struct{}

// frame is one pushed tag mapping. Frames form a parent-linked list so
// pushing is O(1) and never mutates an outer scope's view.
type frame struct {
	parent *frame
	tags   map[string]any
}

// With returns a context with tags pushed as a new innermost frame.
// The map is copied; later mutation of the caller's map has no effect.
// An empty or nil map returns ctx unchanged.
func With(ctx context.Context, tags map[string]any) context.Context {
	if len(tags) == 0 {
		return ctx
	}

	copied := make(map[string]any, len(tags))
	for k, v := range tags {
		copied[k] = v
	}

	parent, _ := ctx.Value(ctxKey{}).(*frame)

	return context.WithValue(ctx, ctxKey{}, &frame{parent: parent, tags: copied})
}

// Do runs fn with tags pushed as a new frame. The frame is scoped to the
// call: it cannot outlive fn on any exit path, because only the derived
// context carries it.
func Do(ctx context.Context, tags map[string]any, fn func(context.Context) error) error {
	return fn(With(ctx, tags))
}

// Value returns the innermost-frame value for key. The second return
// value reports whether any frame defines the key.
func Value(ctx context.Context, key string) (any, bool) {
	for f, _ := ctx.Value(ctxKey{}).(*frame); f != nil; f = f.parent {
		if v, ok := f.tags[key]; ok {
			return v, true
		}
	}

	return nil, false
}

// All materializes the effective tag set: every key defined by any frame,
// with the innermost frame winning collisions. Returns nil when no frame
// is present.
func All(ctx context.Context) map[string]any {
	f, _ := ctx.Value(ctxKey{}).(*frame)
	if f == nil {
		return nil
	}

	var frames []*frame
	for ; f != nil; f = f.parent {
		frames = append(frames, f)
	}

	tags := make(map[string]any)
	// Outermost first so inner frames overwrite.
	for i := len(frames) - 1; i >= 0; i-- {
		for k, v := range frames[i].tags {
			tags[k] = v
		}
	}

	return tags
}

// Keys returns the effective tag keys in sorted order. Useful for
// deterministic record output.
func Keys(ctx context.Context) []string {
	tags := All(ctx)
	if len(tags) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
