package chart

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
)

// rangeFrame draws Tufte-style axis lines that span only the data: the x
// line covers the first to last sample, the y line runs from yFloor (clamped
// to the visible range) to the largest value.
type rangeFrame struct {
	xMin, xMax float64
	yFloor     float64
	yMax       float64
	style      draw.LineStyle
}

func newRangeFrame(xys plotter.XYs, yFloor float64, style draw.LineStyle) *rangeFrame {
	f := &rangeFrame{
		xMin:   math.Inf(1),
		xMax:   math.Inf(-1),
		yFloor: yFloor,
		yMax:   math.Inf(-1),
		style:  style,
	}
	for _, p := range xys {
		f.xMin = math.Min(f.xMin, p.X)
		f.xMax = math.Max(f.xMax, p.X)
		f.yMax = math.Max(f.yMax, p.Y)
	}
	return f
}

// Plot implements plot.Plotter.
func (f *rangeFrame) Plot(c draw.Canvas, plt *plot.Plot) {
	if math.IsInf(f.xMin, 0) {
		return
	}
	trX, trY := plt.Transforms(&c)

	yLow := math.Max(f.yFloor, plt.Y.Min)
	yHigh := math.Max(f.yMax, yLow)

	c.StrokeLine2(f.style, trX(f.xMin), c.Min.Y, trX(f.xMax), c.Min.Y)
	c.StrokeLine2(f.style, c.Min.X, trY(yLow), c.Min.X, trY(yHigh))
}
