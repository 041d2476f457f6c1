package output

import (
	"fmt"
	"time"

	"github.com/masmgr/wordhist/internal/burst"
	"github.com/masmgr/wordhist/internal/series"
)

const (
	reportDateLayout     = "2006-01-02"
	reportDateTimeLayout = "2006-01-02T15:04:05"
)

// SeriesSummary condenses a series for reporting. Counts refer to the
// samples in visit order, so First and Last are not necessarily the
// earliest and latest timestamps.
type SeriesSummary struct {
	Samples    int
	First      time.Time
	Last       time.Time
	FirstCount int
	LastCount  int
	MinCount   int
	MaxCount   int

	// Peak is the largest gain within PeakWindowDays; HasPeak is false when
	// the words never grew.
	Peak           burst.Window
	HasPeak        bool
	PeakWindowDays int
}

// Change is the word count difference between the last and first sample.
func (s SeriesSummary) Change() int {
	return s.LastCount - s.FirstCount
}

// Summarize computes a SeriesSummary with the peak gain over windowDays;
// the zero value describes an empty series.
func Summarize(samples []series.Sample, windowDays int) SeriesSummary {
	if len(samples) == 0 {
		return SeriesSummary{}
	}
	first, last := samples[0], samples[len(samples)-1]
	sum := SeriesSummary{
		Samples:    len(samples),
		First:      first.Time(),
		Last:       last.Time(),
		FirstCount: first.WordCount,
		LastCount:  last.WordCount,
		MinCount:   first.WordCount,
		MaxCount:   first.WordCount,
	}
	for _, s := range samples[1:] {
		sum.MinCount = min(sum.MinCount, s.WordCount)
		sum.MaxCount = max(sum.MaxCount, s.WordCount)
	}

	calc := burst.NewCalculator(windowDays)
	sum.PeakWindowDays = calc.WindowDays()
	sum.Peak, sum.HasPeak = calc.PeakGain(samples)
	return sum
}

func dateRangeValue(sum SeriesSummary) string {
	if sum.Samples == 0 {
		return "-"
	}
	return sum.First.Format(reportDateLayout) + " to " + sum.Last.Format(reportDateLayout)
}

func signed(n int) string {
	if n == 0 {
		return "0"
	}
	return fmt.Sprintf("%+d", n)
}

func peakValue(sum SeriesSummary) string {
	return fmt.Sprintf("%s (%s to %s)", signed(sum.Peak.Gain),
		sum.Peak.Start.Format(reportDateLayout), sum.Peak.End.Format(reportDateLayout))
}
