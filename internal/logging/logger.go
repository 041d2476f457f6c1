// Package logging builds the diagnostic logger shared by the walker and the
// word counter.
package logging

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options configures New.
type Options struct {
	Verbose bool
	Quiet   bool
	Out     io.Writer // default: os.Stderr
}

// New returns a text logger. Verbose enables debug lines; Quiet keeps
// errors only.
func New(opts Options) *logrus.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	switch {
	case opts.Quiet:
		logger.SetLevel(logrus.ErrorLevel)
	case opts.Verbose:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	return New(Options{Out: io.Discard})
}

type fieldsKey struct{}

// WithFields returns a context carrying fields for every entry later built
// from it with Entry. Fields already on ctx are kept unless overridden.
func WithFields(ctx context.Context, fields logrus.Fields) context.Context {
	merged := logrus.Fields{}
	if prev, ok := ctx.Value(fieldsKey{}).(logrus.Fields); ok {
		for k, v := range prev {
			merged[k] = v
		}
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// Entry returns an entry on logger carrying the fields attached to ctx.
func Entry(ctx context.Context, logger *logrus.Logger) *logrus.Entry {
	entry := logger.WithContext(ctx)
	if fields, ok := ctx.Value(fieldsKey{}).(logrus.Fields); ok {
		entry = entry.WithFields(fields)
	}
	return entry
}
