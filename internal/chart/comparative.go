package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// ComparativeEfficacy renders success rates as vertical bars labelled
// "NN%" and writes ComparativeFile.
func (r *Renderer) ComparativeEfficacy(data ComparativeData) (*Figure, error) {
	labels, values, hexes := splitBars(data.Bars)
	colors, err := parseHexes(hexes)
	if err != nil {
		return nil, err
	}

	text := make([]string, len(values))
	for i, v := range values {
		text[i] = fmt.Sprintf("%.0f%%", v)
	}

	p, _ := r.style.build(barPanel{
		title:     data.Title,
		titleSize: 14,
		yLabel:    data.YLabel,
		labels:    labels,
		values:    values,
		colors:    colors,
		width:     0.6,
		valueText: text,
	})

	fig := newFigure(r.style, 10*vg.Inch, 6*vg.Inch, [][]*plot.Plot{{p}})
	fig.Citation = data.Citation
	if err := r.save(ComparativeFile, fig, len(values)); err != nil {
		return nil, err
	}
	return fig, nil
}
