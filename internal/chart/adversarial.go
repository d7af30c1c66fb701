package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// riskNotes draws one boxed label per category under the x tick labels.
type riskNotes struct {
	notes []string
	style text.Style
	below vg.Length
}

func (n *riskNotes) Plot(c draw.Canvas, p *plot.Plot) {
	trX, _ := p.Transforms(&c)
	pad := vg.Points(3)
	for i, note := range n.notes {
		if note == "" {
			continue
		}
		sty := n.style
		sty.XAlign, sty.YAlign = text.XCenter, text.YTop
		at := vg.Point{X: trX(float64(i)), Y: c.Min.Y - n.below}

		w, h := sty.Width(note), sty.Height(note)
		box := []vg.Point{
			{X: at.X - w/2 - pad, Y: at.Y + pad},
			{X: at.X + w/2 + pad, Y: at.Y + pad},
			{X: at.X + w/2 + pad, Y: at.Y - h - pad},
			{X: at.X - w/2 - pad, Y: at.Y - h - pad},
		}
		c.FillPolygon(color.NRGBA{R: 211, G: 211, B: 211, A: 178}, box)
		c.FillText(sty, at, note)
	}
}

// AdversarialSuccess renders attack success rates colored by risk, with a
// dashed reference line across each bar at its height and a risk label
// under the x axis, and writes AdversarialFile.
func (r *Renderer) AdversarialSuccess(data AdversarialData) (*Figure, error) {
	ceiling := data.Max
	if ceiling <= 0 {
		ceiling = 100
	}

	labels := make([]string, len(data.Attacks))
	values := make([]float64, len(data.Attacks))
	colors := make([]color.Color, len(data.Attacks))
	valueText := make([]string, len(data.Attacks))
	risks := make([]string, len(data.Attacks))
	for i, a := range data.Attacks {
		labels[i] = a.Label
		values[i] = a.Value
		colors[i] = RiskColor(a.Value, ceiling)
		valueText[i] = fmt.Sprintf("%.0f%%", a.Value)
		risks[i] = a.Risk
	}

	p, bars := r.style.build(barPanel{
		title:     data.Title,
		titleSize: 14,
		yLabel:    data.YLabel,
		labels:    labels,
		values:    values,
		colors:    colors,
		width:     0.6,
		valueText: valueText,
	})
	bars.LineStyle = draw.LineStyle{Color: color.Black, Width: vg.Points(1)}

	for i, v := range values {
		lo, hi := bars.Extent(i)
		ref, err := plotter.NewLine(plotter.XYs{{X: lo, Y: v}, {X: hi, Y: v}})
		if err != nil {
			return nil, fmt.Errorf("reference line %d: %w", i, err)
		}
		ref.LineStyle.Color = color.NRGBA{R: 128, G: 128, B: 128, A: 128}
		ref.LineStyle.Width = vg.Points(1)
		ref.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(ref)
	}

	notes := &riskNotes{notes: risks, style: r.style.TextStyle(10, false, false)}
	tallest := ""
	for _, l := range labels {
		if p.X.Tick.Label.Height(l) > p.X.Tick.Label.Height(tallest) {
			tallest = l
		}
	}
	notes.below = p.X.Padding + p.X.Tick.Label.Height(tallest) + vg.Points(8)
	p.Add(notes)

	// Reserve a row under the tick labels for the risk notes.
	p.X.Label.Text = " "
	p.X.Label.Padding = notes.style.Height("Risk") + vg.Points(12)

	p.Y.Min, p.Y.Max = 0, ceiling

	fig := newFigure(r.style, 10*vg.Inch, 6*vg.Inch, [][]*plot.Plot{{p}})
	fig.Citation = data.Citation
	if err := r.save(AdversarialFile, fig, len(values)); err != nil {
		return nil, err
	}
	return fig, nil
}
