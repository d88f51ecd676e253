// Package middleware provides the execution-side components of the
// logging adapter: a composable middleware chain over job descriptors,
// the lifecycle logger that emits start/finish/failure records inside a
// scoped tag context, the display-safe argument formatter, and
// supporting recover/tracing/metrics wrappers.
//
// A [Middleware] wraps a job handler. Middleware are composed with
// [Chain] and applied right-to-left: the first middleware in the slice
// is the outermost wrapper.
//
//	jl := middleware.NewJobLogger(cfg, snk, registry)
//	chain := middleware.Chain(jl.Middleware(), middleware.Recover(snk))
//
// # Built-in Middleware
//
//   - [JobLogger.Middleware] — lifecycle records, tag restoration, level narrowing
//   - [Recover] — catches panics and converts them to errors
//   - [Tracing] — wraps execution in an OpenTelemetry span
//   - [Metrics] — records per-job duration and outcome counters
//
// # Writing Custom Middleware
//
//	func MyMiddleware() middleware.Middleware {
//	    return func(ctx context.Context, d job.Descriptor, next middleware.Handler) error {
//	        // pre-processing
//	        err := next(ctx)
//	        // post-processing
//	        return err
//	    }
//	}
//
// Middleware MUST call next to continue the chain unless intentionally
// short-circuiting.
package middleware
