package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// headroom leaves space above the tallest bar for its value label.
const headroom = 1.15

type barPanel struct {
	title      string
	titleSize  float64
	xLabel     string
	yLabel     string
	labels     []string
	values     []float64
	colors     []color.Color
	width      float64
	valueText  []string
	horizontal bool
}

// build returns a plot with the panel's bars on a nominal axis.
func (s Style) build(bp barPanel) (*plot.Plot, *Bars) {
	p := s.NewPlot(bp.title, bp.titleSize)
	s.AddGrid(p)

	bars := NewBars(bp.values, bp.colors, bp.width)
	bars.Horizontal = bp.horizontal
	bars.Labels = bp.valueText
	bars.LabelStyle = s.TextStyle(10, true, false)
	bars.LabelOffset = vg.Points(3)
	p.Add(bars)

	// NominalX/NominalY index names[0], so skip them for empty panels.
	nominal := len(bp.labels) > 0
	if bp.horizontal {
		if nominal {
			p.NominalY(bp.labels...)
		}
		p.Y.Label.Text = bp.yLabel
		p.X.Label.Text = bp.xLabel
		p.X.Min = 0
	} else {
		if nominal {
			p.NominalX(bp.labels...)
		}
		p.X.Label.Text = bp.xLabel
		p.Y.Label.Text = bp.yLabel
		p.Y.Min = 0
		p.Y.Max = maxOf(bp.values) * headroom
	}
	return p, bars
}

func maxOf(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		m = math.Max(m, v)
	}
	if m == 0 {
		return 1
	}
	return m
}
