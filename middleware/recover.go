package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/xraph/joblog/job"
	"github.com/xraph/joblog/sink"
)

// Recover returns middleware that recovers from panics in the handler
// chain. Panics are converted to errors and logged with a stack trace,
// so an outer JobLogger still emits its failure record.
func Recover(snk sink.Sink) Middleware {
	return func(ctx context.Context, d job.Descriptor, next Handler) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				sink.Emit(ctx, snk, slog.LevelError,
					fmt.Sprintf("job handler panicked: %v", r),
					map[string]any{
						"class": d.DisplayName(),
						"jid":   d.JID(),
						"stack": stack,
					})
				retErr = fmt.Errorf("panic in job %s: %v", d.DisplayName(), r)
			}
		}()

		return next(ctx)
	}
}
