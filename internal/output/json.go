package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// JSONHistoryWriter writes the run summary and the full series as JSON.
type JSONHistoryWriter struct{}

// JSONHistoryReport is the JSON output structure for a run.
type JSONHistoryReport struct {
	RepoPath    string              `json:"repo"`
	Pattern     string              `json:"files,omitempty"`
	CountFile   string              `json:"countFile,omitempty"`
	PlotFile    string              `json:"plotFile,omitempty"`
	GeneratedAt string              `json:"generatedAt"`
	Summary     JSONSeriesSummary   `json:"summary"`
	Samples     []JSONHistorySample `json:"samples"`
}

// JSONSeriesSummary holds the series summary in JSON format.
type JSONSeriesSummary struct {
	Commits    int             `json:"commits"`
	First      *string         `json:"first,omitempty"`
	Last       *string         `json:"last,omitempty"`
	FirstCount int             `json:"firstCount"`
	LastCount  int             `json:"lastCount"`
	MinCount   int             `json:"minCount"`
	MaxCount   int             `json:"maxCount"`
	Peak       *JSONPeakWindow `json:"peak,omitempty"`
}

// JSONPeakWindow holds the largest word gain within the burst window.
type JSONPeakWindow struct {
	WindowDays int    `json:"windowDays"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Gain       int    `json:"gain"`
	Commits    int    `json:"commits"`
}

// JSONHistorySample is one sample in JSON format.
type JSONHistorySample struct {
	Timestamp int64  `json:"timestamp"`
	Date      string `json:"date"`
	WordCount int    `json:"wordCount"`
}

// Write outputs the run summary as indented JSON.
func (w *JSONHistoryWriter) Write(out io.Writer, report *HistoryReport) error {
	sum := Summarize(report.Samples, report.BurstWindowDays)

	jsonSummary := JSONSeriesSummary{
		Commits:    sum.Samples,
		FirstCount: sum.FirstCount,
		LastCount:  sum.LastCount,
		MinCount:   sum.MinCount,
		MaxCount:   sum.MaxCount,
	}
	if sum.Samples > 0 {
		first := sum.First.Format(time.RFC3339)
		last := sum.Last.Format(time.RFC3339)
		jsonSummary.First, jsonSummary.Last = &first, &last
	}
	if sum.HasPeak {
		jsonSummary.Peak = &JSONPeakWindow{
			WindowDays: sum.PeakWindowDays,
			Start:      sum.Peak.Start.Format(time.RFC3339),
			End:        sum.Peak.End.Format(time.RFC3339),
			Gain:       sum.Peak.Gain,
			Commits:    sum.Peak.Commits,
		}
	}

	samples := make([]JSONHistorySample, len(report.Samples))
	for i, s := range report.Samples {
		samples[i] = JSONHistorySample{
			Timestamp: s.Timestamp,
			Date:      s.Time().Format(reportDateTimeLayout),
			WordCount: s.WordCount,
		}
	}

	countFile := report.CountFile
	if report.PlotOnly {
		countFile = ""
	}

	return writeJSON(out, JSONHistoryReport{
		RepoPath:    report.RepoPath,
		Pattern:     report.Pattern,
		CountFile:   countFile,
		PlotFile:    report.PlotFile,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Summary:     jsonSummary,
		Samples:     samples,
	})
}

func writeJSON(out io.Writer, data interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
