package chart

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Figure is a rendered chart: one or more panels on a single page with an
// optional overall title and citation line. It is returned by every chart
// routine so callers can inspect or re-save it.
type Figure struct {
	Title    string
	Citation string
	Width    vg.Length
	Height   vg.Length

	// Panels is laid out row-major; a single panel fills the page.
	Panels [][]*plot.Plot

	// Path is where the figure was last saved.
	Path string

	style Style
}

func newFigure(style Style, width, height vg.Length, panels [][]*plot.Plot) *Figure {
	return &Figure{
		Width:  width,
		Height: height,
		Panels: panels,
		style:  style,
	}
}

// Panel returns the plot at row, col.
func (f *Figure) Panel(row, col int) *plot.Plot {
	return f.Panels[row][col]
}

// Caption is the figure title, or the title of its first panel when the
// figure has none of its own.
func (f *Figure) Caption() string {
	if f.Title != "" {
		return f.Title
	}
	if len(f.Panels) > 0 && len(f.Panels[0]) > 0 {
		return f.Panels[0][0].Title.Text
	}
	return ""
}

// Draw renders the figure onto dc.
func (f *Figure) Draw(dc draw.Canvas) {
	pad := vg.Points(8)

	if f.Title != "" {
		sty := f.style.TextStyle(16, true, false)
		sty.XAlign, sty.YAlign = text.XCenter, text.YTop
		mid := (dc.Min.X + dc.Max.X) / 2
		dc.FillText(sty, vg.Point{X: mid, Y: dc.Max.Y - pad}, f.Title)
		dc = draw.Crop(dc, 0, 0, 0, -(sty.Height(f.Title) + 2*pad))
	}

	if f.Citation != "" {
		sty := f.style.TextStyle(9, false, true)
		sty.XAlign, sty.YAlign = text.XLeft, text.YBottom
		w, h := dc.Max.X-dc.Min.X, dc.Max.Y-dc.Min.Y
		dc.FillText(sty, vg.Point{X: dc.Min.X + w*0.02, Y: dc.Min.Y + h*0.02}, f.Citation)
		dc = draw.Crop(dc, 0, 0, h*0.02+sty.Height(f.Citation)+pad, 0)
	}

	rows := len(f.Panels)
	if rows == 0 {
		return
	}
	cols := len(f.Panels[0])
	if rows == 1 && cols == 1 {
		f.Panels[0][0].Draw(dc)
		return
	}

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Points(24),
		PadY:      vg.Points(24),
		PadTop:    pad,
		PadBottom: pad,
		PadLeft:   pad,
		PadRight:  pad,
	}
	canvases := plot.Align(f.Panels, tiles, dc)
	for j := range f.Panels {
		for i, p := range f.Panels[j] {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}
}

// WriteTo renders the figure as PNG at the session DPI.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	c := vgimg.NewWith(
		vgimg.UseWH(f.Width, f.Height),
		vgimg.UseDPI(f.style.DPI),
	)
	f.Draw(draw.New(c))
	return vgimg.PngCanvas{Canvas: c}.WriteTo(w)
}

// Save writes the figure to path, replacing any existing file.
func (f *Figure) Save(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	f.Path = path
	return nil
}
