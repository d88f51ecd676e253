package client

import (
	"context"

	"github.com/xraph/joblog/job"
)

// Handler is the terminal function that submits a descriptor.
type Handler func(ctx context.Context, d job.Descriptor) error

// Middleware wraps descriptor submission with cross-cutting logic.
// Middleware MUST call next to continue the chain (unless
// short-circuiting on error, which aborts the enqueue).
type Middleware func(ctx context.Context, d job.Descriptor, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, d job.Descriptor, next Handler) error {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context, d job.Descriptor) error {
				return mw(ctx, d, prev)
			}
		}

		return h(ctx, d)
	}
}
