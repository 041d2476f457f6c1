package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/wordhist/config"
	"github.com/masmgr/wordhist/internal/logging"
	"github.com/masmgr/wordhist/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "wordhist",
		Usage:     "Plot the word count of a document across its Git history",
		ArgsUsage: "<repo_dir> <files>",
		Version:   "1.0.0",
		Flags:     historyFlags(),
		Action:    historyAction,
	}
}

func historyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "out-count",
			Usage: "Word count series file (default: {repo_dir}/wordcount.txt)",
		},
		&cli.StringFlag{
			Name:  "out-plot",
			Usage: "Plot file; the extension selects the format (default: {repo_dir}/wordcount_plot.pdf)",
		},
		&cli.StringFlag{
			Name:    "plot-title",
			Aliases: []string{"t"},
			Usage:   "Plot title (default: {repo_dir}/{files})",
		},
		&cli.BoolFlag{
			Name:    "overwrite",
			Aliases: []string{"O"},
			Usage:   "Overwrite existing output files",
		},
		&cli.BoolFlag{
			Name:  "plot-only",
			Usage: "Skip the history walk and plot an existing series file",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "Git backend (gitcli, gogit)",
		},
		&cli.StringFlag{
			Name:  "extractor",
			Usage: "Word extraction (detex, plain)",
		},
		&cli.BoolFlag{
			Name:  "strict-extraction",
			Usage: "Abort when the extractor fails on a file instead of counting 0 words",
		},
		&cli.Float64Flag{
			Name:  "width",
			Usage: "Plot width in centimeters",
		},
		&cli.Float64Flag{
			Name:  "height",
			Usage: "Plot height in centimeters",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Summary format (console, json, markdown)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log every commit",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Only report errors",
		},
	}
}

// loadConfig loads configuration from file or defaults and applies flag
// overrides on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var overrides config.Config
	overrides.VCS.Backend = c.String("backend")
	overrides.Extraction.Tool = c.String("extractor")
	overrides.Extraction.Strict = c.Bool("strict-extraction")
	overrides.Chart.Width = c.Float64("width")
	overrides.Chart.Height = c.Float64("height")
	overrides.Output.SummaryFormat = c.String("format")
	if err := cfg.Merge(overrides); err != nil {
		return nil, fmt.Errorf("failed to apply flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveOptions derives paths and title from the positional arguments.
func resolveOptions(c *cli.Context, cfg *config.Config) (historyOptions, error) {
	repoArg, pattern := c.Args().Get(0), c.Args().Get(1)
	repoDir, err := filepath.Abs(repoArg)
	if err != nil {
		return historyOptions{}, fmt.Errorf("resolve repository path: %w", err)
	}

	opts := historyOptions{
		RepoDir:     repoDir,
		Pattern:     pattern,
		CountFile:   config.ResolveOutput(repoDir, cfg.Output.CountFile),
		PlotFile:    config.ResolveOutput(repoDir, cfg.Output.PlotFile),
		Title:       filepath.Join(repoArg, pattern),
		PlotOnly:    c.Bool("plot-only"),
		Overwrite:   c.Bool("overwrite"),
		Quiet:       c.Bool("quiet"),
		BurstWindow: cfg.Output.BurstWindowDays,
		Chart:       chartOptions(cfg),
	}
	if c.IsSet("out-count") {
		opts.CountFile = c.String("out-count")
	}
	if c.IsSet("out-plot") {
		opts.PlotFile = c.String("out-plot")
	}
	if c.IsSet("plot-title") {
		opts.Title = c.String("plot-title")
	}
	format, ok := output.ParseFormat(cfg.Output.SummaryFormat)
	if !ok {
		return historyOptions{}, fmt.Errorf("unknown summary format %q", cfg.Output.SummaryFormat)
	}
	opts.SummaryFormat = format
	return opts, nil
}

func historyAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}
	if c.NArg() != 2 {
		return fmt.Errorf("expected <repo_dir> <files>, got %d arguments", c.NArg())
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	opts, err := resolveOptions(c, cfg)
	if err != nil {
		return err
	}

	log := logging.New(logging.Options{
		Verbose: c.Bool("verbose"),
		Quiet:   opts.Quiet,
		Out:     os.Stderr,
	})
	progress := newProgressReporter(os.Stderr, !opts.Quiet && isTerminal(os.Stderr))

	runner := &historyRunner{
		walk:   newWalkFunc(cfg, log, progress),
		render: renderChart,
		out:    c.App.Writer,
		status: c.App.ErrWriter,
		log:    log,
	}
	return runner.runWithSignals(c.Context, opts)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
