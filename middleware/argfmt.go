package middleware

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xraph/joblog/job"
)

// Redacted is the placeholder substituted for arguments that must not be
// logged.
const Redacted = "..."

// omitted marks an argument position outside the allow-list.
const omitted = "-"

// FormatArgs renders a display-safe representation of the descriptor's
// positional arguments under the given policy.
//
// An allow-all policy renders every argument; a redact-all policy
// returns a single Redacted placeholder. A name allow-list resolves the
// worker's declared parameter names through resolver and renders only
// allow-listed positions, substituting omitted markers elsewhere. When
// the worker cannot be resolved or exposes no entry point, the whole
// list collapses to a single Redacted placeholder: name resolution fails
// closed rather than leaking a value under a misattributed name.
func FormatArgs(d job.Descriptor, policy job.ArgPolicy, resolver job.ParamResolver) []string {
	args := d.Args()

	switch {
	case policy.RedactsAll():
		return []string{Redacted}
	case policy.AllowsAll():
		out := make([]string, len(args))
		for i, a := range args {
			out[i] = renderValue(a)
		}

		return out
	}

	if resolver == nil {
		return []string{Redacted}
	}

	names, ok := resolver.ParamNames(d.ResolveClass())
	if !ok {
		return []string{Redacted}
	}

	out := make([]string, len(args))
	for i, a := range args {
		if i < len(names) && policy.Allows(names[i]) {
			out[i] = renderValue(a)
		} else {
			out[i] = omitted
		}
	}

	return out
}

// Invocation renders the "Worker.perform(args)" form used in lifecycle
// record messages.
func Invocation(name string, rendered []string) string {
	return fmt.Sprintf("%s.perform(%s)", name, strings.Join(rendered, ", "))
}

// renderValue produces a human-readable debug representation of one
// argument: quoted strings, numeric and boolean literals, compact JSON
// for composites. Lossy, not required to round-trip.
func renderValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		// JSON decodes every number as float64; print integral values
		// as integer literals.
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}

		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return renderValue(float64(x))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x)
	case json.Number:
		return x.String()
	default:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}

		return fmt.Sprintf("%v", v)
	}
}
