package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/joblog"
	"github.com/xraph/joblog/id"
	"github.com/xraph/joblog/job"
)

// Transport delivers an encoded descriptor to the broker. Implementations
// are supplied by the hosting framework; joblog owns no queue semantics.
type Transport interface {
	Push(ctx context.Context, queue string, payload []byte) error
}

// Client enqueues job descriptors through a middleware chain and codec.
// The descriptor is cloned before the chain runs, so middleware mutations
// never leak back into the caller's map.
type Client struct {
	transport Transport
	codec     job.Codec
	mws       []Middleware
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCodec sets the wire codec. Defaults to JSON.
func WithCodec(c job.Codec) Option {
	return func(cl *Client) {
		cl.codec = c
	}
}

// WithMiddleware appends middleware to the enqueue chain.
func WithMiddleware(mws ...Middleware) Option {
	return func(cl *Client) {
		cl.mws = append(cl.mws, mws...)
	}
}

// WithLogger sets the client's own diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// New creates a Client submitting through t.
func New(t Transport, opts ...Option) *Client {
	cl := &Client{
		transport: t,
		codec:     job.GetCodec(job.CodecNameJSON),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(cl)
	}

	return cl
}

// Enqueue submits a descriptor: fills in jid, queue, and enqueued_at when
// absent, runs the middleware chain, encodes the result, and pushes it to
// the transport. Returns the job id.
func (c *Client) Enqueue(ctx context.Context, d job.Descriptor) (string, error) {
	if c.transport == nil {
		return "", joblog.ErrNoTransport
	}
	if d.Class() == "" {
		return "", joblog.ErrMissingClass
	}

	d = d.Clone()
	if d.JID() == "" {
		d[job.KeyJID] = id.NewJobID().String()
	}
	if d.Queue() == "" {
		d[job.KeyQueue] = "default"
	}
	if _, ok := d[job.KeyEnqueuedAt]; !ok {
		d[job.KeyEnqueuedAt] = time.Now().UnixMilli()
	}

	terminal := func(ctx context.Context, d job.Descriptor) error {
		payload, err := c.codec.Encode(d)
		if err != nil {
			return fmt.Errorf("encode descriptor: %w", err)
		}

		return c.transport.Push(ctx, d.Queue(), payload)
	}

	if err := Chain(c.mws...)(ctx, d, terminal); err != nil {
		return "", err
	}

	c.logger.Debug("job enqueued",
		slog.String("class", d.Class()),
		slog.String("jid", d.JID()),
		slog.String("queue", d.Queue()),
	)

	return d.JID(), nil
}
