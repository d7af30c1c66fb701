package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

func (s Style) timePanel(tp TimePanel) (*plot.Plot, error) {
	labels, values, hexes := splitBars(tp.Bars)
	colors, err := parseHexes(hexes)
	if err != nil {
		return nil, err
	}
	text := make([]string, len(values))
	for i, v := range values {
		text[i] = fmt.Sprintf("%.1f %s", v, tp.Unit)
	}
	p, _ := s.build(barPanel{
		title:     tp.Title,
		titleSize: 12,
		yLabel:    tp.YLabel,
		labels:    labels,
		values:    values,
		colors:    colors,
		width:     0.5,
		valueText: text,
	})
	return p, nil
}

// DetectionTimes renders the MTTD and MTTR comparisons side by side under
// one title and writes DetectionFile.
func (r *Renderer) DetectionTimes(data DetectionData) (*Figure, error) {
	mttd, err := r.style.timePanel(data.MTTD)
	if err != nil {
		return nil, fmt.Errorf("MTTD panel: %w", err)
	}
	mttr, err := r.style.timePanel(data.MTTR)
	if err != nil {
		return nil, fmt.Errorf("MTTR panel: %w", err)
	}

	fig := newFigure(r.style, 12*vg.Inch, 5*vg.Inch, [][]*plot.Plot{{mttd, mttr}})
	fig.Title = data.Title
	fig.Citation = data.Citation
	if err := r.save(DetectionFile, fig, len(data.MTTD.Bars)+len(data.MTTR.Bars)); err != nil {
		return nil, err
	}
	return fig, nil
}
