package burst

import (
	"sort"
	"time"

	"github.com/masmgr/wordhist/internal/series"
)

// DefaultWindowDays is the window used when none is configured.
const DefaultWindowDays = 7

// Window is the writing burst found by PeakGain.
type Window struct {
	Start   time.Time
	End     time.Time
	Gain    int
	Commits int // samples from Start to End inclusive
}

// Calculator finds writing bursts using a sliding window over commit time.
type Calculator struct {
	windowDays int
}

// NewCalculator creates a burst calculator.
func NewCalculator(windowDays int) *Calculator {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return &Calculator{windowDays: windowDays}
}

// WindowDays returns the window length in days.
func (c *Calculator) WindowDays() int {
	return c.windowDays
}

// PeakGain returns the largest increase in word count from one sample to a
// later one no more than windowDays apart. Samples are ordered by timestamp
// first; the input is not modified. ok is false when no window contains an
// increase.
func (c *Calculator) PeakGain(samples []series.Sample) (best Window, ok bool) {
	if len(samples) < 2 {
		return Window{}, false
	}
	sorted := chronological(samples)
	span := int64(c.windowDays) * 24 * 60 * 60

	// mins holds indices inside the window with strictly increasing counts,
	// so mins[0] is the window minimum.
	mins := make([]int, 0, len(sorted))
	left := 0
	for right := range sorted {
		for sorted[right].Timestamp-sorted[left].Timestamp > span {
			left++
		}
		for len(mins) > 0 && mins[0] < left {
			mins = mins[1:]
		}
		for len(mins) > 0 && sorted[mins[len(mins)-1]].WordCount >= sorted[right].WordCount {
			mins = mins[:len(mins)-1]
		}
		mins = append(mins, right)

		lo := mins[0]
		if lo == right {
			continue
		}
		gain := sorted[right].WordCount - sorted[lo].WordCount
		if !ok || gain > best.Gain {
			best = Window{
				Start:   sorted[lo].Time(),
				End:     sorted[right].Time(),
				Gain:    gain,
				Commits: right - lo + 1,
			}
			ok = true
		}
	}
	return best, ok
}

// chronological returns a copy of samples in ascending timestamp order.
func chronological(samples []series.Sample) []series.Sample {
	sorted := make([]series.Sample, len(samples))
	copy(sorted, samples)

	if isSortedAscending(sorted) {
		return sorted
	}
	if isSortedDescending(sorted) {
		reverse(sorted)
		return sorted
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})
	return sorted
}

func isSortedAscending(samples []series.Sample) bool {
	for i := 1; i < len(samples); i++ {
		if samples[i].Timestamp < samples[i-1].Timestamp {
			return false
		}
	}
	return true
}

func isSortedDescending(samples []series.Sample) bool {
	for i := 1; i < len(samples); i++ {
		if samples[i].Timestamp > samples[i-1].Timestamp {
			return false
		}
	}
	return true
}

func reverse(samples []series.Sample) {
	for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
		samples[i], samples[j] = samples[j], samples[i]
	}
}
