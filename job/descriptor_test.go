package job_test

import (
	"testing"

	"github.com/xraph/joblog/job"
)

func TestDisplayName_Precedence(t *testing.T) {
	cases := []struct {
		name string
		d    job.Descriptor
		want string
	}{
		{"class only", job.Descriptor{"class": "A"}, "A"},
		{"wrapped beats class", job.Descriptor{"class": "Wrapper", "wrapped": "B"}, "B"},
		{"display beats wrapped", job.Descriptor{"class": "Wrapper", "wrapped": "B", "display_class": "C"}, "C"},
		{"empty", job.Descriptor{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.DisplayName(); got != tc.want {
				t.Errorf("DisplayName() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveClass_IgnoresDisplayClass(t *testing.T) {
	d := job.Descriptor{"class": "Wrapper", "wrapped": "Real", "display_class": "Pretty"}
	if got := d.ResolveClass(); got != "Real" {
		t.Errorf("ResolveClass() = %q, want %q", got, "Real")
	}

	d = job.Descriptor{"class": "Plain", "display_class": "Pretty"}
	if got := d.ResolveClass(); got != "Plain" {
		t.Errorf("ResolveClass() = %q, want %q", got, "Plain")
	}
}

func TestEnqueuedAtMillis_Normalization(t *testing.T) {
	// The same instant as legacy float-seconds and current integer-ms.
	const instantMs = int64(1756100000123)
	seconds := float64(instantMs) / 1000.0

	cases := []struct {
		name string
		v    any
		want int64
	}{
		{"float seconds legacy", seconds, instantMs},
		{"integer milliseconds", instantMs, instantMs},
		{"float milliseconds from json", float64(instantMs), instantMs},
		{"whole float seconds", 1756100000.0, 1756100000000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := job.Descriptor{"enqueued_at": tc.v}
			got, ok := d.EnqueuedAtMillis()
			if !ok {
				t.Fatal("expected enqueued_at to be readable")
			}
			if got != tc.want {
				t.Errorf("EnqueuedAtMillis() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestEnqueuedAtMillis_Absent(t *testing.T) {
	for _, d := range []job.Descriptor{
		{},
		{"enqueued_at": "soon"},
		{"enqueued_at": 0},
	} {
		if _, ok := d.EnqueuedAtMillis(); ok {
			t.Errorf("EnqueuedAtMillis() ok for %v, want false", d)
		}
	}
}

func TestRetryCount(t *testing.T) {
	if got := (job.Descriptor{"retry_count": 2}).RetryCount(); got != 2 {
		t.Errorf("RetryCount() = %d, want 2", got)
	}
	// JSON decodes integers as float64.
	if got := (job.Descriptor{"retry_count": float64(3)}).RetryCount(); got != 3 {
		t.Errorf("RetryCount() = %d, want 3", got)
	}
	if got := (job.Descriptor{}).RetryCount(); got != 0 {
		t.Errorf("RetryCount() = %d, want 0", got)
	}
	if got := (job.Descriptor{"retry_count": "two"}).RetryCount(); got != 0 {
		t.Errorf("RetryCount() = %d for malformed value, want 0", got)
	}
}

func TestStaticTags(t *testing.T) {
	d := job.Descriptor{"tags": []any{"urgent", "billing", 7}}
	got := d.StaticTags()
	if len(got) != 2 || got[0] != "urgent" || got[1] != "billing" {
		t.Errorf("StaticTags() = %v, want [urgent billing]", got)
	}

	d = job.Descriptor{"tags": []string{"a"}}
	if got := d.StaticTags(); len(got) != 1 || got[0] != "a" {
		t.Errorf("StaticTags() = %v, want [a]", got)
	}

	if got := (job.Descriptor{"tags": "urgent"}).StaticTags(); got != nil {
		t.Errorf("StaticTags() = %v for malformed value, want nil", got)
	}
}

func TestLogging_Defaults(t *testing.T) {
	opts := (job.Descriptor{}).Logging()
	if opts.Skip || opts.SkipStart {
		t.Error("expected skip options off by default")
	}
	if opts.Level != "" {
		t.Errorf("Level = %q, want empty", opts.Level)
	}
	if !opts.ArgPolicy.AllowsAll() {
		t.Error("expected allow-all argument policy by default")
	}
}

func TestLogging_LevelOverridesShorthand(t *testing.T) {
	d := job.Descriptor{
		"log_level": "warn",
		"logging":   map[string]any{"level": "debug"},
	}
	if got := d.Logging().Level; got != "debug" {
		t.Errorf("Level = %q, want %q", got, "debug")
	}

	d = job.Descriptor{"log_level": "warn"}
	if got := d.Logging().Level; got != "warn" {
		t.Errorf("Level = %q, want %q", got, "warn")
	}
}

func TestLogging_MalformedShapesTreatedAsAbsent(t *testing.T) {
	cases := []job.Descriptor{
		{"logging": "yes"},
		{"logging": 42},
		{"logging": []any{"skip"}},
		{"logging": map[string]any{"skip": "yes", "args": 12, "tags": "nope"}},
	}
	for _, d := range cases {
		opts := d.Logging()
		if opts.Skip || opts.SkipStart {
			t.Errorf("malformed logging %v produced skip options", d)
		}
		if !opts.ArgPolicy.AllowsAll() {
			t.Errorf("malformed logging %v produced a non-default arg policy", d)
		}
		if opts.Tags != nil {
			t.Errorf("malformed logging %v produced tags %v", d, opts.Tags)
		}
	}
}

func TestLogging_ParsesOptions(t *testing.T) {
	d := job.Descriptor{
		"logging": map[string]any{
			"skip":       true,
			"skip_start": true,
			"args":       []any{"user_id"},
			"tags":       map[string]any{"request_id": "r1"},
		},
	}
	opts := d.Logging()
	if !opts.Skip || !opts.SkipStart {
		t.Error("expected skip and skip_start set")
	}
	if opts.ArgPolicy.AllowsAll() || opts.ArgPolicy.RedactsAll() {
		t.Error("expected allow-list policy")
	}
	if !opts.ArgPolicy.Allows("user_id") || opts.ArgPolicy.Allows("password") {
		t.Error("allow-list policy admits the wrong names")
	}
	if opts.Tags["request_id"] != "r1" {
		t.Errorf("Tags = %v, want request_id=r1", opts.Tags)
	}
}

func TestParsePolicy(t *testing.T) {
	if !job.ParsePolicy(nil).AllowsAll() {
		t.Error("nil should allow all")
	}
	if !job.ParsePolicy(true).AllowsAll() {
		t.Error("true should allow all")
	}
	if !job.ParsePolicy(false).RedactsAll() {
		t.Error("false should redact all")
	}
	p := job.ParsePolicy([]any{"a", 3, "b"})
	if !p.Allows("a") || !p.Allows("b") || p.Allows("c") {
		t.Error("list policy admits the wrong names")
	}
	if !job.ParsePolicy(map[string]any{}).AllowsAll() {
		t.Error("malformed policy should fall back to allow all")
	}
}

func TestSetLoggingTags(t *testing.T) {
	d := job.Descriptor{"class": "A"}
	d.SetLoggingTags(map[string]any{"user_id": 123})

	opts := d.Logging()
	if opts.Tags["user_id"] != 123 {
		t.Fatalf("Tags = %v, want user_id=123", opts.Tags)
	}

	// Merging preserves existing tags.
	d.SetLoggingTags(map[string]any{"request_id": "r1"})
	opts = d.Logging()
	if opts.Tags["user_id"] != 123 || opts.Tags["request_id"] != "r1" {
		t.Errorf("Tags = %v, want both user_id and request_id", opts.Tags)
	}

	// Empty merge leaves the descriptor untouched.
	empty := job.Descriptor{"class": "B"}
	empty.SetLoggingTags(nil)
	if _, ok := empty["logging"]; ok {
		t.Error("empty SetLoggingTags must not create a logging mapping")
	}
}

func TestClone_IsolatesLogging(t *testing.T) {
	orig := job.Descriptor{
		"class":   "A",
		"logging": map[string]any{"tags": map[string]any{"a": 1}},
	}
	cl := orig.Clone()
	cl.SetLoggingTags(map[string]any{"b": 2})
	cl["queue"] = "other"

	if _, ok := orig.Logging().Tags["b"]; ok {
		t.Error("mutating the clone's logging tags leaked into the original")
	}
	if orig.Queue() != "" {
		t.Error("mutating the clone's top level leaked into the original")
	}
}
