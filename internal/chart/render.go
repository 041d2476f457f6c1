// Package chart renders a word-count history as a date-annotated line plot.
package chart

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/masmgr/wordhist/internal/series"
)

// Options controls the rendered figure.
type Options struct {
	Width, Height vg.Length
	// RangeFrame replaces the full axis lines with lines spanning the data.
	RangeFrame bool
	// MaxMinorTicks limits day ticks to ranges of at most this many days.
	MaxMinorTicks int
	// Location is the time zone of the date axis; nil means local time.
	Location *time.Location
}

// DefaultOptions returns a 16x10 cm figure with a range frame.
func DefaultOptions() Options {
	return Options{
		Width:         16 * vg.Centimeter,
		Height:        10 * vg.Centimeter,
		RangeFrame:    true,
		MaxMinorTicks: 400,
	}
}

// Render draws samples in the given order and saves the chart to path. The
// image format follows the file extension.
func Render(path string, samples []series.Sample, title string, opts Options) error {
	p, err := Build(samples, title, opts)
	if err != nil {
		return err
	}
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

// Build assembles the plot without saving it.
func Build(samples []series.Sample, title string, opts Options) (*plot.Plot, error) {
	scale, err := ComputeScale(samples)
	if err != nil {
		return nil, err
	}

	xys := make(plotter.XYs, len(samples))
	for i, s := range samples {
		xys[i].X = float64(s.Timestamp)
		xys[i].Y = scale.Apply(s.WordCount)
	}

	p := plot.New()
	p.Title.Text = title

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	points.Shape = draw.CircleGlyph{}
	points.Radius = vg.Points(1.5)
	p.Add(line, points)

	p.X.Tick.Marker = calendarTicks{loc: opts.Location, maxMinor: opts.MaxMinorTicks}
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	if scale.Prefix == 0 {
		p.Y.Label.Text = scale.Label()
	} else {
		p.Y.Label.Text = scale.latexLabel()
		p.Y.Label.TextStyle.Handler = &text.Latex{Fonts: font.DefaultCache}
	}

	p.Y.Min, p.Y.Max = paddedRange(p.Y.Min, p.Y.Max)

	if opts.RangeFrame {
		p.X.LineStyle.Width = 0
		p.Y.LineStyle.Width = 0
		p.Add(newRangeFrame(xys, 0, draw.LineStyle{Color: p.Y.Tick.LineStyle.Color, Width: vg.Points(0.75)}))
	}
	return p, nil
}
