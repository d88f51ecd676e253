package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"time"

	"github.com/xraph/joblog"
	"github.com/xraph/joblog/job"
	"github.com/xraph/joblog/sink"
	"github.com/xraph/joblog/tagctx"
)

// JobLogger wraps job execution with lifecycle records and a scoped tag
// context restored from the descriptor. It is the lifecycle-wrapper
// component registered into the hosting framework, either directly via
// Prepare/Call or as chain middleware via Middleware.
//
// The logger is fail-safe: it never changes the outcome of the wrapped
// job body, and the body's error is always returned unchanged after the
// failure record is emitted.
type JobLogger struct {
	cfg      joblog.Config
	sink     sink.Sink
	resolver job.ParamResolver
}

// NewJobLogger creates a JobLogger. A nil sink falls back to
// slog.Default(); a nil resolver makes every name allow-list policy
// redact (fail closed).
func NewJobLogger(cfg joblog.Config, snk sink.Sink, resolver job.ParamResolver) *JobLogger {
	if snk == nil {
		snk = sink.NewSlog(nil)
	}

	return &JobLogger{cfg: cfg, sink: snk, resolver: resolver}
}

// Middleware adapts the logger for Chain: Prepare wraps Call wraps next.
func (l *JobLogger) Middleware() Middleware {
	return func(ctx context.Context, d job.Descriptor, next Handler) error {
		return l.Prepare(ctx, d, func(ctx context.Context) error {
			return l.Call(ctx, d, d.Queue(), next)
		})
	}
}

// Prepare runs fn inside a tag-context frame seeded from the descriptor:
// class, jid, bid and static tags under the configured prefix, merged
// with any passed-through logging.tags. Passed-through tags keep their
// captured names and are merged last, so on a key collision the
// passed-through value wins.
//
// When the descriptor requests a log level and the sink supports level
// narrowing, a narrowed sink is carried on the context for the scope of
// fn; the original sink is untouched, so restoration on every exit path
// is structural.
func (l *JobLogger) Prepare(ctx context.Context, d job.Descriptor, fn func(context.Context) error) error {
	opts := d.Logging()
	prefix := l.cfg.TagPrefix

	tags := make(map[string]any, 4+len(opts.Tags))
	if name := d.DisplayName(); name != "" {
		tags[prefix+"class"] = name
	}
	if jid := d.JID(); jid != "" {
		tags[prefix+"jid"] = jid
	}
	if bid := d.BID(); bid != "" {
		tags[prefix+"bid"] = bid
	}
	if st := d.StaticTags(); len(st) > 0 {
		tags[prefix+"tags"] = st
	}
	for k, v := range opts.Tags {
		tags[k] = v
	}

	ctx = tagctx.With(ctx, tags)

	if lvl, ok := sink.ParseLevel(opts.Level); ok {
		if ls, lok := l.sink.(sink.LevelSink); lok {
			ctx = sink.ContextWith(ctx, ls.WithMinLevel(lvl))
		}
	}

	return fn(ctx)
}

// Call wraps fn with timing and lifecycle records for the descriptor:
// a start record (unless suppressed), then either a finish record with
// elapsed wall time and queue-wait, or an error-level failure record
// naming the error's kind. fn's error is returned unchanged.
//
// logging.skip suppresses all three records but still executes fn.
func (l *JobLogger) Call(ctx context.Context, d job.Descriptor, queue string, fn func(context.Context) error) error {
	opts := d.Logging()
	if opts.Skip {
		return fn(ctx)
	}

	snk := sink.FromContext(ctx, l.sink)
	prefix := l.cfg.TagPrefix

	base := tagctx.All(ctx)
	if base == nil {
		base = make(map[string]any)
	}
	if queue == "" {
		queue = d.Queue()
	}
	if queue != "" {
		base[prefix+"queue"] = queue
	}
	if rc := d.RetryCount(); rc > 0 {
		base[prefix+"retry_count"] = rc
	}

	// Queue-wait in milliseconds, clamped so clock skew or legacy
	// timestamp drift never surfaces as a negative wait.
	queuedMs := int64(-1)
	if !l.cfg.SkipEnqueuedTimeLogging {
		if enq, ok := d.EnqueuedAtMillis(); ok {
			queuedMs = time.Now().UnixMilli() - enq
			if queuedMs < 0 {
				queuedMs = 0
			}
		}
	}

	name := d.DisplayName()
	invocation := name
	if !l.cfg.SkipJobArguments {
		invocation = Invocation(name, FormatArgs(d, opts.ArgPolicy, l.resolver))
	}

	if !l.cfg.SkipStartLogging && !opts.SkipStart {
		sink.Emit(ctx, snk, slog.LevelInfo, "Start job "+invocation, cloneTags(base))
	}

	start := time.Now() // monotonic
	err := fn(ctx)
	elapsed := roundSeconds(time.Since(start))

	done := cloneTags(base)
	done[prefix+"elapsed"] = elapsed
	if queuedMs >= 0 {
		done[prefix+"queued_ms"] = queuedMs
	}

	if err != nil {
		kind := errKind(err)
		done[prefix+"error"] = kind
		msg := fmt.Sprintf("Failed job %s in %.3fs: %s", invocation, elapsed, kind)
		sink.Emit(ctx, snk, slog.LevelError, msg, done)

		return err
	}

	msg := fmt.Sprintf("Finished job %s in %.3fs", invocation, elapsed)
	sink.Emit(ctx, snk, slog.LevelInfo, msg, done)

	return nil
}

func cloneTags(tags map[string]any) map[string]any {
	out := make(map[string]any, len(tags)+3)
	for k, v := range tags {
		out[k] = v
	}

	return out
}

// roundSeconds converts a monotonic duration to seconds at microsecond
// precision.
func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1e6) / 1e6
}

// errKind names the error's dynamic type, dereferencing pointers so
// *MyError and MyError report the same kind. Always non-empty.
func errKind(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "error"
	}
	if s := t.String(); s != "" {
		return s
	}

	return "error"
}
