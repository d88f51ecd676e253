package client

import (
	"context"
	"encoding/json"

	"github.com/xraph/joblog/job"
	"github.com/xraph/joblog/sink"
	"github.com/xraph/joblog/tagctx"
)

// TagPassthrough returns enqueue-side middleware that reads the
// allow-listed tag keys from the ambient tag context and embeds the
// values it finds into the descriptor's logging.tags, so the executing
// process can restore them.
//
// The allow-list is captured at construction: order-preserving,
// deduplicated. Values must survive transport, so scalars pass through
// unchanged and anything else is pushed through a JSON round trip to a
// plain value; a value that cannot be made transport-safe is dropped
// silently — logging must never break job submission. Keys with no
// ambient value are absent from the result, never null.
//
// The middleware is a complete no-op when the sink is not
// structured-tag-capable: without a tag-capable sink on the executing
// side the values could never be emitted, so the descriptor is left
// untouched.
func TagPassthrough(allowList []string, snk sink.Sink) Middleware {
	keys := dedupe(allowList)
	enabled := sink.HasTags(snk)

	return func(ctx context.Context, d job.Descriptor, next Handler) error {
		if !enabled || len(keys) == 0 {
			return next(ctx, d)
		}

		var tags map[string]any
		for _, k := range keys {
			v, ok := tagctx.Value(ctx, k)
			if !ok {
				continue
			}
			pv, ok := plainValue(v)
			if !ok {
				continue
			}
			if tags == nil {
				tags = make(map[string]any, len(keys))
			}
			tags[k] = pv
		}

		if len(tags) > 0 {
			d.SetLoggingTags(tags)
		}

		return next(ctx, d)
	}
}

// dedupe returns keys with duplicates and empties removed, preserving
// first-occurrence order.
func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}

	return out
}

// plainValue converts v to a transport-safe value. Scalars pass through
// unchanged; anything else goes through a JSON round trip into plain
// maps/slices. Reports false when the value cannot be made safe.
func plainValue(v any) (any, bool) {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return v, true
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}

	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, false
	}

	return out, true
}
