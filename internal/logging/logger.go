package logging

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with the verbose switch and timing helper the CLI uses.
type Logger struct {
	zerolog.Logger
	Verbose bool
}

// New writes human-readable console output to writer. Without verbose only
// warnings and above are emitted.
func New(writer io.Writer, verbose bool) Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: writer, TimeFormat: time.TimeOnly, NoColor: !isTerminal(writer)}
	return Logger{
		Logger:  zerolog.New(console).Level(level).With().Timestamp().Logger(),
		Verbose: verbose,
	}
}

// WithContext attaches the logger so lower layers can use FromContext.
func (l Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or a disabled one.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

func (l Logger) Verbosef(format string, args ...any) {
	l.Debug().Msgf(format, args...)
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		l.Debug().Str("elapsed", time.Since(start).Round(time.Millisecond).String()).Msgf("%s finished", label)
	}
}
