package output

import (
	"io"
	"time"

	"github.com/masmgr/wordhist/internal/series"
)

// Compile-time interface conformance checks.
var (
	_ HistoryReportWriter = (*ConsoleHistoryWriter)(nil)
	_ HistoryReportWriter = (*JSONHistoryWriter)(nil)
	_ HistoryReportWriter = (*MarkdownHistoryWriter)(nil)
)

// OutputFormat represents the summary format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatMarkdown OutputFormat = "markdown"
)

// ParseFormat accepts the format names and reports whether name is one.
func ParseFormat(name string) (OutputFormat, bool) {
	switch f := OutputFormat(name); f {
	case FormatConsole, FormatJSON, FormatMarkdown:
		return f, true
	case "":
		return FormatConsole, true
	default:
		return "", false
	}
}

// HistoryReport describes one run of the word-count history.
type HistoryReport struct {
	RepoPath  string
	Pattern   string
	CountFile string
	PlotFile  string
	PlotOnly  bool
	// BurstWindowDays is the window for the peak gain; 0 selects the default.
	BurstWindowDays int
	GeneratedAt     time.Time
	Samples         []series.Sample
}

// HistoryReportWriter writes a run summary.
type HistoryReportWriter interface {
	Write(w io.Writer, report *HistoryReport) error
}

// NewHistoryReportWriter creates a summary writer for the specified format.
func NewHistoryReportWriter(format OutputFormat) HistoryReportWriter {
	switch format {
	case FormatJSON:
		return &JSONHistoryWriter{}
	case FormatMarkdown:
		return &MarkdownHistoryWriter{}
	default:
		return &ConsoleHistoryWriter{}
	}
}
