package wordcount

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"

	"github.com/masmgr/wordhist/internal/logging"
)

// Options configures a Counter.
type Options struct {
	// Strict makes an extraction failure fatal. Otherwise the file
	// contributes 0 words and a warning is logged.
	Strict bool
	Logger *logrus.Logger
}

// Counter sums the word counts of every file a pattern matches.
type Counter struct {
	extractor Extractor
	opts      Options
}

// NewCounter creates a Counter backed by ext.
func NewCounter(ext Extractor, opts Options) *Counter {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	return &Counter{extractor: ext, opts: opts}
}

// Count resolves pattern against the working directory and returns the total
// word count of the matched files. No match yields 0.
func (c *Counter) Count(ctx context.Context, pattern string) (int, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return 0, fmt.Errorf("resolve pattern %q: %w", pattern, err)
	}

	total := 0
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := c.extractor.CountWords(ctx, path)
		if err != nil {
			if c.opts.Strict || ctx.Err() != nil {
				return 0, err
			}
			logging.Entry(ctx, c.opts.Logger).WithError(err).WithField("file", path).Warn("extraction failed, counting 0 words")
			continue
		}
		logging.Entry(ctx, c.opts.Logger).WithFields(logrus.Fields{"file": path, "words": n}).Debug("counted")
		total += n
	}
	return total, nil
}
