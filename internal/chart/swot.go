package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// swotRange is the fixed horizontal axis of every SWOT panel.
const swotRange = 10

// SWOT renders the four weighted SWOT quadrants as horizontal bars in a
// 2x2 grid and writes SWOTFile.
func (r *Renderer) SWOT(data SWOTData) (*Figure, error) {
	grid := [][]*plot.Plot{make([]*plot.Plot, 2), make([]*plot.Plot, 2)}
	items := 0

	for i, panel := range data.Panels {
		fill, err := ParseHex(panel.Color)
		if err != nil {
			return nil, fmt.Errorf("panel %q: %w", panel.Title, err)
		}
		labels, values, _ := splitBars(panel.Bars)
		text := make([]string, len(values))
		for j, v := range values {
			text[j] = fmt.Sprintf("%.1f", v)
		}

		p, bars := r.style.build(barPanel{
			title:      panel.Title,
			titleSize:  12,
			labels:     labels,
			values:     values,
			colors:     []color.Color{fill},
			width:      0.8,
			valueText:  text,
			horizontal: true,
		})
		bars.LabelStyle.Color = color.White
		p.X.Min, p.X.Max = 0, swotRange

		grid[i/2][i%2] = p
		items += len(values)
	}

	fig := newFigure(r.style, 12*vg.Inch, 10*vg.Inch, grid)
	fig.Title = data.Title
	fig.Citation = data.Citation
	if err := r.save(SWOTFile, fig, items); err != nil {
		return nil, err
	}
	return fig, nil
}
