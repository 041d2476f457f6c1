// Package walker replays a repository's history, checking out each commit
// oldest first and recording the word count found there.
package walker

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/masmgr/wordhist/internal/logging"
	"github.com/masmgr/wordhist/internal/series"
	"github.com/masmgr/wordhist/internal/vcs"
)

// WordCounter counts words for a glob pattern in the current working tree.
type WordCounter interface {
	Count(ctx context.Context, pattern string) (int, error)
}

// Options configures a Walker.
type Options struct {
	Logger *logrus.Logger
	// OnProgress is called with the number of visited commits, starting at
	// 0 once the commit list is known.
	OnProgress func(done, total int)
}

// Walker drives one full-history traversal.
type Walker struct {
	client  vcs.Client
	counter WordCounter
	opts    Options
}

// New creates a Walker.
func New(client vcs.Client, counter WordCounter, opts Options) *Walker {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	return &Walker{client: client, counter: counter, opts: opts}
}

// Walk enters repoDir, visits every commit reachable from HEAD oldest first
// and counts the words of files matching pattern at each one. On every exit
// path, including panics, the original reference is checked out again and
// then the previous working directory is restored.
func (w *Walker) Walk(ctx context.Context, repoDir, pattern string) (samples []series.Sample, err error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	if err := os.Chdir(repoDir); err != nil {
		return nil, fmt.Errorf("enter repository: %w", err)
	}
	defer func() {
		if cerr := os.Chdir(wd); cerr != nil {
			err = errors.Join(err, fmt.Errorf("restore working directory: %w", cerr))
		}
	}()

	return w.walkHistory(ctx, pattern)
}

func (w *Walker) walkHistory(ctx context.Context, pattern string) (samples []series.Sample, err error) {
	branch, err := w.client.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		// Restore even when ctx was cancelled.
		if rerr := w.client.Checkout(context.WithoutCancel(ctx), branch); rerr != nil {
			w.opts.Logger.WithError(rerr).WithField("ref", branch).Error("could not restore original reference")
			err = errors.Join(err, fmt.Errorf("restore %s: %w", branch, rerr))
		}
	}()

	commits, err := w.client.ListCommits(ctx)
	if err != nil {
		return nil, err
	}
	w.opts.Logger.WithFields(logrus.Fields{"ref": branch, "commits": len(commits)}).Debug("walking history")

	total := len(commits)
	w.progress(0, total)
	samples = make([]series.Sample, 0, total)
	for i := total - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id := commits[i]
		visited := total - i

		if err := w.client.Checkout(ctx, id); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			w.opts.Logger.WithError(err).WithField("commit", id).Warn("checkout failed, skipping commit")
			w.progress(visited, total)
			continue
		}

		ts, err := w.client.CommitTimestamp(ctx)
		if err != nil {
			return nil, err
		}
		count, err := w.counter.Count(logging.WithFields(ctx, logrus.Fields{"commit": id}), pattern)
		if err != nil {
			return nil, fmt.Errorf("count words at %s: %w", id, err)
		}

		w.opts.Logger.WithFields(logrus.Fields{"commit": id, "timestamp": ts, "words": count}).Debug("visited")
		samples = append(samples, series.Sample{Timestamp: ts, WordCount: count})
		w.progress(visited, total)
	}
	return samples, nil
}

func (w *Walker) progress(done, total int) {
	if w.opts.OnProgress != nil {
		w.opts.OnProgress(done, total)
	}
}
