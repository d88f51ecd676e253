package job

import (
	"encoding/json"
	"math"
)

// Descriptor field keys consumed by the adapter.
const (
	KeyClass        = "class"
	KeyWrapped      = "wrapped"
	KeyDisplayClass = "display_class"
	KeyArgs         = "args"
	KeyJID          = "jid"
	KeyBID          = "bid"
	KeyQueue        = "queue"
	KeyRetryCount   = "retry_count"
	KeyEnqueuedAt   = "enqueued_at"
	KeyTags         = "tags"
	KeyLogLevel     = "log_level"
	KeyLogging      = "logging"
)

// Logging sub-option keys under KeyLogging.
const (
	OptLevel     = "level"
	OptSkip      = "skip"
	OptSkipStart = "skip_start"
	OptArgs      = "args"
	OptTags      = "tags"
)

// Descriptor is one unit of background work as a flat key→value record.
// Accessors never fail: a missing or malformed field reads as its zero
// value so a bad descriptor can degrade logging but never break it.
type Descriptor map[string]any

// Class returns the canonical worker type name.
func (d Descriptor) Class() string { return stringAt(d, KeyClass) }

// Wrapped returns the actual worker type name when Class is a generic
// wrapper, or "" when not set.
func (d Descriptor) Wrapped() string { return stringAt(d, KeyWrapped) }

// DisplayClass returns the logging override name, or "" when not set.
func (d Descriptor) DisplayClass() string { return stringAt(d, KeyDisplayClass) }

// DisplayName returns the worker name used in log records.
// Precedence: display_class > wrapped > class.
func (d Descriptor) DisplayName() string {
	if s := d.DisplayClass(); s != "" {
		return s
	}
	if s := d.Wrapped(); s != "" {
		return s
	}

	return d.Class()
}

// ResolveClass returns the worker name used for parameter-name lookup.
// The unwrapped name is preferred; display_class is a label only and is
// never used for resolution.
func (d Descriptor) ResolveClass() string {
	if s := d.Wrapped(); s != "" {
		return s
	}

	return d.Class()
}

// Args returns the positional arguments. Absence reads as empty.
func (d Descriptor) Args() []any {
	switch v := d[KeyArgs].(type) {
	case []any:
		return v
	case nil:
		return nil
	default:
		return nil
	}
}

// JID returns the job identifier.
func (d Descriptor) JID() string { return stringAt(d, KeyJID) }

// BID returns the batch identifier, or "" when the job is not batched.
func (d Descriptor) BID() string { return stringAt(d, KeyBID) }

// Queue returns the destination queue name.
func (d Descriptor) Queue() string { return stringAt(d, KeyQueue) }

// RetryCount returns the number of prior retry attempts.
func (d Descriptor) RetryCount() int {
	n, ok := intAt(d, KeyRetryCount)
	if !ok {
		return 0
	}

	return int(n)
}

// EnqueuedAtMillis returns the submission timestamp normalized to epoch
// milliseconds. Legacy descriptors carry epoch seconds as a float;
// current ones carry integer milliseconds. Any epoch value below 1e12 is
// read as seconds (1e12 ms is Sep 2001; second timestamps stay below it
// until the year 33658), so both forms normalize to the same instant.
func (d Descriptor) EnqueuedAtMillis() (int64, bool) {
	f, ok := floatAt(d, KeyEnqueuedAt)
	if !ok || f <= 0 {
		return 0, false
	}

	if f >= 1e12 {
		return int64(math.Round(f)), true
	}

	return int64(math.Round(f * 1000)), true
}

// StaticTags returns the job-level tag strings.
func (d Descriptor) StaticTags() []string {
	raw, ok := d[KeyTags].([]any)
	if !ok {
		if tags, ok := d[KeyTags].([]string); ok {
			return tags
		}

		return nil
	}

	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			tags = append(tags, s)
		}
	}
	if len(tags) == 0 {
		return nil
	}

	return tags
}

// Logging returns the parsed logging sub-options. Malformed shapes are
// treated as absent.
func (d Descriptor) Logging() Options {
	opts := Options{ArgPolicy: PolicyAll()}

	if lvl := stringAt(d, KeyLogLevel); lvl != "" {
		opts.Level = lvl
	}

	m := mapAt(d, KeyLogging)
	if m == nil {
		return opts
	}

	if lvl := stringAt(m, OptLevel); lvl != "" {
		opts.Level = lvl // logging.level overrides the log_level shorthand
	}
	opts.Skip = boolAt(m, OptSkip)
	opts.SkipStart = boolAt(m, OptSkipStart)
	if raw, ok := m[OptArgs]; ok {
		opts.ArgPolicy = ParsePolicy(raw)
	}
	opts.Tags = mapAt(m, OptTags)

	return opts
}

// SetLoggingTags merges tags into the descriptor's logging.tags mapping,
// creating the logging mapping when needed. Used by the enqueue-side
// propagator. A nil or empty tags map is a no-op.
func (d Descriptor) SetLoggingTags(tags map[string]any) {
	if len(tags) == 0 {
		return
	}

	m := mapAt(d, KeyLogging)
	if m == nil {
		m = make(map[string]any, 1)
		d[KeyLogging] = m
	}

	existing := mapAt(m, OptTags)
	if existing == nil {
		existing = make(map[string]any, len(tags))
		m[OptTags] = existing
	}
	for k, v := range tags {
		existing[k] = v
	}
}

// Clone returns a copy of the descriptor safe for mutation by middleware.
// The top-level map and the logging mapping are copied; argument values
// are shared (the adapter never mutates them).
func (d Descriptor) Clone() Descriptor {
	out := make(Descriptor, len(d))
	for k, v := range d {
		out[k] = v
	}

	if m := mapAt(d, KeyLogging); m != nil {
		mc := make(map[string]any, len(m))
		for k, v := range m {
			mc[k] = v
		}
		if tags := mapAt(m, OptTags); tags != nil {
			tc := make(map[string]any, len(tags))
			for k, v := range tags {
				tc[k] = v
			}
			mc[OptTags] = tc
		}
		out[KeyLogging] = mc
	}

	return out
}

// Options are the recognized logging sub-options of one descriptor.
type Options struct {
	// Level overrides the sink's minimum level for the job's scope.
	Level string

	// Skip suppresses all lifecycle records for the job.
	Skip bool

	// SkipStart suppresses only the start-of-job record.
	SkipStart bool

	// ArgPolicy controls which positional arguments are rendered.
	ArgPolicy ArgPolicy

	// Tags are pre-seeded tag values, normally written by the
	// enqueue-side propagator.
	Tags map[string]any
}

type policyMode int

const (
	policyAll policyMode = iota
	policyNone
	policyNames
)

// ArgPolicy is the argument-filter policy: log everything, redact
// everything, or allow-list by declared parameter name.
type ArgPolicy struct {
	mode  policyMode
	names map[string]bool
}

// PolicyAll renders every argument.
func PolicyAll() ArgPolicy { return ArgPolicy{mode: policyAll} }

// PolicyNone redacts the whole argument list.
func PolicyNone() ArgPolicy { return ArgPolicy{mode: policyNone} }

// PolicyNames renders only arguments whose declared parameter name is in
// names.
func PolicyNames(names []string) ArgPolicy {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}

	return ArgPolicy{mode: policyNames, names: set}
}

// ParsePolicy interprets a raw logging.args value: true renders all,
// false redacts all, a list of strings is a name allow-list. Malformed
// values are treated as absent (render all).
func ParsePolicy(raw any) ArgPolicy {
	switch v := raw.(type) {
	case nil:
		return PolicyAll()
	case bool:
		if v {
			return PolicyAll()
		}

		return PolicyNone()
	case []string:
		return PolicyNames(v)
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}

		return PolicyNames(names)
	default:
		return PolicyAll()
	}
}

// AllowsAll reports whether every argument is rendered.
func (p ArgPolicy) AllowsAll() bool { return p.mode == policyAll }

// RedactsAll reports whether the whole argument list is redacted.
func (p ArgPolicy) RedactsAll() bool { return p.mode == policyNone }

// Allows reports whether the named parameter's argument is rendered.
func (p ArgPolicy) Allows(name string) bool {
	switch p.mode {
	case policyAll:
		return true
	case policyNone:
		return false
	default:
		return p.names[name]
	}
}

// ──────────────────────────────────────────────────
// Loose-typed field helpers
// ──────────────────────────────────────────────────

func stringAt(m map[string]any, key string) string {
	s, _ := m[key].(string)

	return s
}

func boolAt(m map[string]any, key string) bool {
	b, _ := m[key].(bool)

	return b
}

func mapAt(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)

	return v
}

func intAt(m map[string]any, key string) (int64, bool) {
	f, ok := floatAt(m, key)
	if !ok {
		return 0, false
	}

	return int64(f), true
}

// floatAt reads a numeric field regardless of how the decoder typed it:
// JSON yields float64 or json.Number, msgpack yields sized ints, and
// in-process descriptors carry native Go numbers.
func floatAt(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}

		return f, true
	default:
		return 0, false
	}
}
