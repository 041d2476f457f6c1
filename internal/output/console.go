package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleHistoryWriter writes a colored run summary.
type ConsoleHistoryWriter struct{}

// Write outputs the run summary as an aligned table.
func (w *ConsoleHistoryWriter) Write(out io.Writer, report *HistoryReport) error {
	sum := Summarize(report.Samples, report.BurstWindowDays)

	fmt.Fprintln(out, color.GreenString("Word Count History"))
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	if report.Pattern != "" {
		fmt.Fprintf(out, "Files: %s\n", report.Pattern)
	}
	fmt.Fprintf(out, "Period: %s\n\n", dateRangeValue(sum))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Commits\t%d\n", sum.Samples)
	if sum.Samples > 0 {
		fmt.Fprintf(tw, "First\t%d\n", sum.FirstCount)
		fmt.Fprintf(tw, "Last\t%d\n", sum.LastCount)
		fmt.Fprintf(tw, "Min\t%d\n", sum.MinCount)
		fmt.Fprintf(tw, "Max\t%d\n", sum.MaxCount)
		fmt.Fprintf(tw, "Change\t%s\n", changeColor(sum.Change())(signed(sum.Change())))
	}
	if sum.HasPeak {
		fmt.Fprintf(tw, "Peak %dd\t%s\n", sum.PeakWindowDays, color.CyanString(peakValue(sum)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	if !report.PlotOnly && report.CountFile != "" {
		fmt.Fprintf(out, "Series: %s\n", report.CountFile)
	}
	if report.PlotFile != "" {
		fmt.Fprintf(out, "Plot: %s\n", report.PlotFile)
	}
	return nil
}

func changeColor(delta int) func(string, ...interface{}) string {
	switch {
	case delta < 0:
		return color.RedString
	case delta > 0:
		return color.GreenString
	default:
		return color.YellowString
	}
}
