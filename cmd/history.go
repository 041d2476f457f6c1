package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg"

	"github.com/masmgr/wordhist/config"
	"github.com/masmgr/wordhist/internal/chart"
	"github.com/masmgr/wordhist/internal/output"
	"github.com/masmgr/wordhist/internal/series"
	"github.com/masmgr/wordhist/internal/vcs"
	"github.com/masmgr/wordhist/internal/walker"
	"github.com/masmgr/wordhist/internal/wordcount"
)

// OutputExistsError reports an output file that would be clobbered.
type OutputExistsError struct {
	Path string
}

func (e *OutputExistsError) Error() string {
	return fmt.Sprintf("output file %s exists (use -O to overwrite)", e.Path)
}

// CheckOutputs stats every path up front and reports all that already
// exist. It does nothing when overwrite is set.
func CheckOutputs(paths []string, overwrite bool) error {
	if overwrite {
		return nil
	}
	var errs []error
	for _, p := range paths {
		_, err := os.Stat(p)
		switch {
		case err == nil:
			errs = append(errs, &OutputExistsError{Path: p})
		case !errors.Is(err, fs.ErrNotExist):
			errs = append(errs, fmt.Errorf("check output %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

type historyOptions struct {
	RepoDir       string
	Pattern       string
	CountFile     string
	PlotFile      string
	Title         string
	PlotOnly      bool
	Overwrite     bool
	Quiet         bool
	SummaryFormat output.OutputFormat
	BurstWindow   int
	Chart         chart.Options
}

type (
	walkFunc   func(ctx context.Context, repoDir, pattern string) ([]series.Sample, error)
	renderFunc func(path string, samples []series.Sample, title string, opts chart.Options) error
)

// historyRunner wires the pipeline: output guard, walk or load, save,
// render, summary.
type historyRunner struct {
	walk   walkFunc
	render renderFunc
	out    io.Writer
	status io.Writer
	log    *logrus.Logger
}

func (r *historyRunner) runWithSignals(ctx context.Context, opts historyOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.run(ctx, opts)
}

func (r *historyRunner) run(ctx context.Context, opts historyOptions) error {
	start := time.Now()

	// Both paths are guarded even in plot-only mode, where the series file
	// is read rather than written.
	if err := CheckOutputs([]string{opts.CountFile, opts.PlotFile}, opts.Overwrite); err != nil {
		return err
	}

	var samples []series.Sample
	if opts.PlotOnly {
		loaded, err := series.Load(opts.CountFile)
		if err != nil {
			return fmt.Errorf("failed to load series: %w", err)
		}
		r.log.WithFields(logrus.Fields{"path": opts.CountFile, "samples": len(loaded)}).Debug("series loaded")
		samples = loaded
	} else {
		if !opts.Quiet {
			color.New(color.FgGreen).Fprintf(r.status, "Scanning %v repo\n", opts.RepoDir)
		}
		walked, err := r.walk(ctx, opts.RepoDir, opts.Pattern)
		if err != nil {
			return err
		}
		if err := series.Save(opts.CountFile, walked); err != nil {
			return fmt.Errorf("failed to save series: %w", err)
		}
		samples = walked
	}

	if err := r.render(opts.PlotFile, samples, opts.Title, opts.Chart); err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}

	if opts.Quiet {
		return nil
	}
	report := &output.HistoryReport{
		RepoPath:        opts.RepoDir,
		Pattern:         opts.Pattern,
		CountFile:       opts.CountFile,
		PlotFile:        opts.PlotFile,
		PlotOnly:        opts.PlotOnly,
		BurstWindowDays: opts.BurstWindow,
		GeneratedAt:     time.Now(),
		Samples:         samples,
	}
	if err := output.NewHistoryReportWriter(opts.SummaryFormat).Write(r.out, report); err != nil {
		return err
	}
	fmt.Fprintf(r.status, "\nCompleted in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// newWalkFunc builds the backend, extractor and walker from cfg for one run.
func newWalkFunc(cfg *config.Config, log *logrus.Logger, progress *progressReporter) walkFunc {
	return func(ctx context.Context, repoDir, pattern string) ([]series.Sample, error) {
		client, err := vcs.New(cfg.VCS.Backend, repoDir)
		if err != nil {
			if vcs.IsNotRepository(err) {
				return nil, fmt.Errorf("invalid Git repository - please specify the full path to the root of the project: %w", err)
			}
			return nil, err
		}
		ext, err := wordcount.NewExtractor(cfg.Extraction.Tool, cfg.Extraction.Command, cfg.Extraction.Args)
		if err != nil {
			return nil, err
		}
		counter := wordcount.NewCounter(ext, wordcount.Options{Strict: cfg.Extraction.Strict, Logger: log})

		w := walker.New(client, counter, walker.Options{Logger: log, OnProgress: progress.Update})
		defer progress.Finish()
		return w.Walk(ctx, repoDir, pattern)
	}
}

func chartOptions(cfg *config.Config) chart.Options {
	opts := chart.DefaultOptions()
	opts.Width = vg.Length(cfg.Chart.Width) * vg.Centimeter
	opts.Height = vg.Length(cfg.Chart.Height) * vg.Centimeter
	opts.RangeFrame = cfg.Chart.RangeFrame
	opts.MaxMinorTicks = cfg.Chart.MinorTickLimit
	return opts
}

func renderChart(path string, samples []series.Sample, title string, opts chart.Options) error {
	return chart.Render(path, samples, title, opts)
}
