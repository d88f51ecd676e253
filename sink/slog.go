package sink

import (
	"context"
	"log/slog"
)

// Slog adapts a *slog.Logger to the full sink capability set: plain
// emission, structured tags, and scoped level narrowing.
//
// Narrowing only filters at the sink layer. To let per-job options widen
// verbosity below the handler's own level (e.g. a job requesting debug
// records), configure the underlying handler at the widest level you
// ever want and set the everyday minimum on the sink.
type Slog struct {
	logger *slog.Logger
	min    slog.Level
	hasMin bool
}

var _ TagSink = (*Slog)(nil)
var _ LevelSink = (*Slog)(nil)

// NewSlog wraps logger as a Slog sink. A nil logger uses slog.Default().
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}

	return &Slog{logger: logger}
}

// NewSlogLevel wraps logger with an explicit minimum level.
func NewSlogLevel(logger *slog.Logger, min slog.Level) *Slog {
	s := NewSlog(logger)
	s.min = min
	s.hasMin = true

	return s
}

// Logger returns the wrapped slog.Logger.
func (s *Slog) Logger() *slog.Logger { return s.logger }

// Emit implements Sink.
func (s *Slog) Emit(ctx context.Context, level slog.Level, msg string) {
	s.EmitTagged(ctx, level, msg, nil)
}

// EmitTagged implements TagSink. Tags become attributes in sorted key order.
func (s *Slog) EmitTagged(ctx context.Context, level slog.Level, msg string, tags map[string]any) {
	if s.hasMin && level < s.min {
		return
	}

	if len(tags) == 0 {
		s.logger.Log(ctx, level, msg)

		return
	}

	args := make([]any, 0, len(tags)*2)
	for _, k := range sortedKeys(tags) {
		args = append(args, k, tags[k])
	}

	s.logger.Log(ctx, level, msg, args...)
}

// MinLevel implements LevelSink. Without an explicit minimum it probes
// the wrapped logger for the lowest enabled level.
func (s *Slog) MinLevel() slog.Level {
	if s.hasMin {
		return s.min
	}

	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if s.logger.Enabled(context.Background(), l) {
			return l
		}
	}

	return slog.LevelError
}

// WithMinLevel implements LevelSink. The receiver is unchanged.
func (s *Slog) WithMinLevel(level slog.Level) Sink {
	return &Slog{logger: s.logger, min: level, hasMin: true}
}
