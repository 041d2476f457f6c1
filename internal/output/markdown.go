package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownHistoryWriter writes the run summary as Markdown.
type MarkdownHistoryWriter struct{}

// Write outputs the run summary as a Markdown document.
func (w *MarkdownHistoryWriter) Write(out io.Writer, report *HistoryReport) error {
	sum := Summarize(report.Samples, report.BurstWindowDays)

	fmt.Fprintln(out, "# Word Count History")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", escapeMarkdown(report.RepoPath))
	if report.Pattern != "" {
		fmt.Fprintf(out, "**Files:** `%s`\n\n", report.Pattern)
	}
	fmt.Fprintf(out, "**Period:** %s\n\n", dateRangeValue(sum))
	if sum.HasPeak {
		fmt.Fprintf(out, "**Peak %d-day gain:** %s\n\n", sum.PeakWindowDays, peakValue(sum))
	}

	fmt.Fprintln(out, "| Commits | First | Last | Min | Max | Change |")
	fmt.Fprintln(out, "|--------:|------:|-----:|----:|----:|-------:|")
	fmt.Fprintf(out, "| %d | %d | %d | %d | %d | %s |\n",
		sum.Samples, sum.FirstCount, sum.LastCount, sum.MinCount, sum.MaxCount, signed(sum.Change()))

	if len(report.Samples) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "## Samples")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "| # | Date | Words |")
		fmt.Fprintln(out, "|--:|------|------:|")
		for i, s := range report.Samples {
			fmt.Fprintf(out, "| %d | %s | %d |\n", i+1, s.Time().Format(reportDateTimeLayout), s.WordCount)
		}
	}
	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
