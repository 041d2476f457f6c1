package chart

import (
	"fmt"
	"math"

	"github.com/masmgr/wordhist/internal/series"
)

const wordCountLabel = "Word count"

// ScalingError reports a series whose mean word count has no logarithm.
type ScalingError struct {
	Mean    float64
	Samples int
}

func (e *ScalingError) Error() string {
	if e.Samples == 0 {
		return "chart: cannot scale an empty series"
	}
	return fmt.Sprintf("chart: mean word count %g is not positive, cannot choose an axis scale", e.Mean)
}

// Scale divides word counts by 10^Prefix for display.
type Scale struct {
	Prefix int
}

// ComputeScale picks Prefix = floor(log10(mean word count)).
func ComputeScale(samples []series.Sample) (Scale, error) {
	if len(samples) == 0 {
		return Scale{}, &ScalingError{}
	}
	sum := 0.0
	for _, s := range samples {
		sum += float64(s.WordCount)
	}
	mean := sum / float64(len(samples))
	if !(mean > 0) {
		return Scale{}, &ScalingError{Mean: mean, Samples: len(samples)}
	}
	return Scale{Prefix: decade(mean)}, nil
}

// decade returns floor(log10(v)) for v > 0, exact at powers of ten.
func decade(v float64) int {
	p := int(math.Floor(math.Log10(v)))
	switch {
	case math.Pow10(p+1) <= v:
		p++
	case math.Pow10(p) > v:
		p--
	}
	return p
}

// Apply returns count in display units.
func (s Scale) Apply(count int) float64 {
	if s.Prefix >= 0 {
		return float64(count) / math.Pow10(s.Prefix)
	}
	return float64(count) * math.Pow10(-s.Prefix)
}

// Label is the y-axis label in plain text.
func (s Scale) Label() string {
	if s.Prefix == 0 {
		return wordCountLabel
	}
	return fmt.Sprintf("%s / 10^%d", wordCountLabel, s.Prefix)
}

// latexLabel typesets the exponent for the LaTeX text handler.
func (s Scale) latexLabel() string {
	if s.Prefix == 0 {
		return wordCountLabel
	}
	return fmt.Sprintf("%s / $10^{%d}$", wordCountLabel, s.Prefix)
}

// paddedRange anchors the bottom of the axis 5% of the visible span below
// zero so the chart always shows the zero line. A series dipping below zero
// is padded from its own minimum instead. max is left as fitted; a flat
// series takes its span from its value.
func paddedRange(min, max float64) (float64, float64) {
	span := max - min
	if span == 0 {
		span = math.Abs(max)
		if span == 0 {
			span = 1
		}
	}
	return math.Min(-0.05*span, min-0.05*span), max
}
