package joblog

import "errors"

var (
	// ErrMissingClass is returned when a descriptor is enqueued without
	// a worker class name.
	ErrMissingClass = errors.New("joblog: descriptor missing class")

	// ErrNoTransport is returned when a client has no transport configured.
	ErrNoTransport = errors.New("joblog: no transport configured")
)
