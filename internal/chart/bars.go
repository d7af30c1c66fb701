package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Bars draws one bar per value at integer positions 0..n-1. Unlike
// plotter.BarChart the bar width is expressed in data units, so overlays
// can be lined up with a bar's exact extent.
type Bars struct {
	Values []float64

	// Colors cycles over the bars by position.
	Colors []color.Color

	// Width is the bar width in data units.
	Width float64

	// Horizontal draws bars along the X axis at Y positions.
	Horizontal bool

	// LineStyle outlines each bar when its width is non-zero.
	LineStyle draw.LineStyle

	// Labels are drawn above vertical bars and centered in horizontal ones.
	Labels      []string
	LabelStyle  text.Style
	LabelOffset vg.Length
}

// NewBars returns bars of the given data-unit width, filled with colors.
func NewBars(values []float64, colors []color.Color, width float64) *Bars {
	return &Bars{
		Values: append([]float64(nil), values...),
		Colors: colors,
		Width:  width,
	}
}

// Extent returns the low and high edge of bar i along its category axis.
func (b *Bars) Extent(i int) (lo, hi float64) {
	pos := float64(i)
	return pos - b.Width/2, pos + b.Width/2
}

// ColorAt returns the fill color of bar i.
func (b *Bars) ColorAt(i int) color.Color {
	if len(b.Colors) == 0 {
		return color.Gray{Y: 128}
	}
	return b.Colors[i%len(b.Colors)]
}

// Plot implements plot.Plotter.
func (b *Bars) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)

	for i, v := range b.Values {
		lo, hi := b.Extent(i)
		var pts []vg.Point
		if b.Horizontal {
			pts = []vg.Point{
				{X: trX(0), Y: trY(lo)},
				{X: trX(v), Y: trY(lo)},
				{X: trX(v), Y: trY(hi)},
				{X: trX(0), Y: trY(hi)},
			}
		} else {
			pts = []vg.Point{
				{X: trX(lo), Y: trY(0)},
				{X: trX(hi), Y: trY(0)},
				{X: trX(hi), Y: trY(v)},
				{X: trX(lo), Y: trY(v)},
			}
		}

		c.FillPolygon(b.ColorAt(i), c.ClipPolygonXY(pts))
		if b.LineStyle.Width > 0 {
			outline := append(append([]vg.Point(nil), pts...), pts[0])
			c.StrokeLines(b.LineStyle, c.ClipLinesXY(outline)...)
		}

		if i >= len(b.Labels) || b.Labels[i] == "" {
			continue
		}
		sty := b.LabelStyle
		var at vg.Point
		if b.Horizontal {
			sty.XAlign, sty.YAlign = text.XCenter, text.YCenter
			at = vg.Point{X: trX(v / 2), Y: trY(float64(i))}
		} else {
			sty.XAlign, sty.YAlign = text.XCenter, text.YBottom
			at = vg.Point{X: trX(float64(i)), Y: trY(v) + b.LabelOffset}
		}
		c.FillText(sty, at, b.Labels[i])
	}
}

// DataRange implements plot.DataRanger.
func (b *Bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	catMin, catMax := -0.5, float64(len(b.Values))-0.5
	valMin, valMax := 0.0, 0.0
	for _, v := range b.Values {
		valMin = math.Min(valMin, v)
		valMax = math.Max(valMax, v)
	}
	if b.Horizontal {
		return valMin, valMax, catMin, catMax
	}
	return catMin, catMax, valMin, valMax
}
