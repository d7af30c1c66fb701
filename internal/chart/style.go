package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// DefaultDPI is the resolution of every saved chart.
const DefaultDPI = 300

// Style is the look applied to every plot of a rendering session. It is
// passed to the Renderer explicitly instead of mutating package defaults.
type Style struct {
	// FontVariant selects the Liberation variant: "Sans", "Serif" or "Mono".
	FontVariant string
	Grid        bool
	GridAlpha   float64
	DPI         int
}

// DefaultStyle returns sans-serif text, a light grid and 300 DPI output.
func DefaultStyle() Style {
	return Style{
		FontVariant: "Sans",
		Grid:        true,
		GridAlpha:   0.3,
		DPI:         DefaultDPI,
	}
}

// FontVariants lists the Liberation variants a Style may select.
var FontVariants = []string{"Sans", "Serif", "Mono"}

// ValidFontVariant reports whether v names a bundled Liberation variant.
func ValidFontVariant(v string) bool {
	for _, known := range FontVariants {
		if v == known {
			return true
		}
	}
	return false
}

// withDefaults fills unset fields. An unknown font variant falls back to
// Sans since gonum has no face to measure it with.
func (s Style) withDefaults() Style {
	def := DefaultStyle()
	if !ValidFontVariant(s.FontVariant) {
		s.FontVariant = def.FontVariant
	}
	if s.DPI <= 0 {
		s.DPI = def.DPI
	}
	if s.GridAlpha < 0 || s.GridAlpha > 1 {
		s.GridAlpha = def.GridAlpha
	}
	return s
}

// Font returns the session font at size points.
func (s Style) Font(size float64, bold, italic bool) font.Font {
	f := font.Font{
		Typeface: "Liberation",
		Variant:  font.Variant(s.FontVariant),
		Size:     vg.Points(size),
	}
	if bold {
		f.Weight = xfont.WeightBold
	}
	if italic {
		f.Style = xfont.StyleItalic
	}
	return f
}

// TextStyle returns a black text style in the session font.
func (s Style) TextStyle(size float64, bold, italic bool) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    s.Font(size, bold, italic),
		Handler: plot.DefaultTextHandler,
	}
}

// NewPlot returns a plot with the session fonts applied to the title, axis
// labels and tick labels.
func (s Style) NewPlot(title string, titleSize float64) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font = s.Font(titleSize, true, false)
	p.Title.Padding = vg.Points(10)

	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font = s.Font(12, true, false)
		ax.Tick.Label.Font = s.Font(10, false, false)
	}
	return p
}

// AddGrid adds a grid behind the data when the style asks for one.
func (s Style) AddGrid(p *plot.Plot) {
	if !s.Grid {
		return
	}
	g := plotter.NewGrid()
	c := color.NRGBA{R: 128, G: 128, B: 128, A: uint8(s.GridAlpha * 255)}
	g.Vertical.Color = c
	g.Horizontal.Color = c
	p.Add(g)
}

// ParseHex parses "#RRGGBB" into an opaque color.
func ParseHex(s string) (color.Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func parseHexes(hexes []string) ([]color.Color, error) {
	out := make([]color.Color, len(hexes))
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
