package chart

import (
	"fmt"

	"github.com/gzhole/threatlens/internal/taxonomy"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// ThreatEfficacy renders one bar per category average, colored from
// EfficacyPalette by position and labelled to one decimal, and writes
// EfficacyFile.
func (r *Renderer) ThreatEfficacy(avgs taxonomy.EfficacyAverages) (*Figure, error) {
	palette, err := parseHexes(EfficacyPalette)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(avgs))
	values := make([]float64, len(avgs))
	text := make([]string, len(avgs))
	for i, avg := range avgs {
		labels[i] = string(avg.Category)
		values[i] = avg.Mean
		text[i] = fmt.Sprintf("%.1f", avg.Mean)
	}

	p, _ := r.style.build(barPanel{
		title:     "Average Threat Efficacy by Category",
		titleSize: 14,
		xLabel:    "Threat Category",
		yLabel:    "Average Efficacy (1-10 scale)",
		labels:    labels,
		values:    values,
		colors:    palette,
		width:     0.8,
		valueText: text,
	})

	fig := newFigure(r.style, 10*vg.Inch, 6*vg.Inch, [][]*plot.Plot{{p}})
	if err := r.save(EfficacyFile, fig, len(values)); err != nil {
		return nil, err
	}
	return fig, nil
}

// RenderEfficacy implements taxonomy.EfficacyRenderer.
func (r *Renderer) RenderEfficacy(avgs taxonomy.EfficacyAverages) (string, error) {
	if _, err := r.ThreatEfficacy(avgs); err != nil {
		return "", err
	}
	return r.OutputPath(EfficacyFile), nil
}
