package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// progressReporter shows a progress bar over the commit list. The bar is
// created on the first update, once the total is known.
type progressReporter struct {
	enabled bool
	out     io.Writer
	bar     *progressbar.ProgressBar
}

func newProgressReporter(out io.Writer, enabled bool) *progressReporter {
	return &progressReporter{enabled: enabled, out: out}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Update matches walker.Options.OnProgress.
func (p *progressReporter) Update(done, total int) {
	if !p.enabled || total <= 0 {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription("commits"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(done)
}

// Finish clears the bar; it is safe to call when no bar was shown.
func (p *progressReporter) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}
