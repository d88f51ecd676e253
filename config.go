package joblog

// Config holds process-wide settings for the logging adapter.
// All fields default to "off"/empty; per-job descriptor options can
// further suppress logging but never re-enable what Config disables.
type Config struct {
	// SkipJobArguments suppresses argument rendering in lifecycle
	// records for every job; only the worker name is logged.
	SkipJobArguments bool

	// SkipStartLogging suppresses the start-of-job record for every job.
	// Finish and failure records are still emitted.
	SkipStartLogging bool

	// SkipEnqueuedTimeLogging disables the queue-wait computation and
	// its tag on finish and failure records.
	SkipEnqueuedTimeLogging bool

	// TagPrefix is prepended to every automatically derived tag name
	// (class, jid, queue, ...). Tags passed through from the enqueuing
	// context keep their captured names.
	TagPrefix string
}

// DefaultConfig returns a Config with everything enabled and no prefix.
func DefaultConfig() Config {
	return Config{}
}
