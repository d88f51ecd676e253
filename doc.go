// Package joblog is a structured logging adapter for background job
// processing frameworks. It intercepts job lifecycle events (enqueue,
// start, finish, failure) and emits structured log records with
// contextual tags, and it propagates ambient tags from the enqueuing
// process to the executing process through the job descriptor.
//
// joblog does not implement a queue, a scheduler, or a store. It consumes
// a flat job descriptor and an injected logging sink, and produces two
// pluggable components for the hosting framework:
//
//   - middleware.JobLogger wraps job execution with lifecycle records and
//     a scoped tag context restored from the descriptor.
//   - client.TagPassthrough is enqueue-side middleware that copies an
//     allow-list of ambient tag values into the descriptor so they
//     reappear in the executing process.
//
// # Quick Start
//
//	snk := sink.NewSlog(slog.Default())
//
//	// Worker process: register workers, wrap execution.
//	reg := job.NewRegistry()
//	reg.Register(&job.Definition{
//	    Class:   "EmailWorker",
//	    Params:  []string{"user_id", "template"},
//	    Handler: sendEmail,
//	})
//	jl := middleware.NewJobLogger(joblog.DefaultConfig(), snk, reg)
//	chain := middleware.Chain(jl.Middleware(), middleware.Recover(snk))
//
//	// Client process: capture ambient tags at enqueue time.
//	c := client.New(transport,
//	    client.WithMiddleware(client.TagPassthrough([]string{"user_id", "request_id"}, snk)),
//	)
//	ctx = tagctx.With(ctx, map[string]any{"request_id": rid})
//	jid, err := c.Enqueue(ctx, job.Descriptor{
//	    "class": "EmailWorker",
//	    "args":  []any{userID, "welcome"},
//	})
//
// Logging is fail-safe: malformed descriptor options degrade to defaults,
// worker resolution failures redact arguments rather than raise, and the
// wrapped job body's error is always returned unchanged.
package joblog
