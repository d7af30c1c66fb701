// Package report bundles the rendered charts of a run into a single PDF:
// a summary page with the efficacy table followed by one page per chart.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	gofpdf "github.com/go-pdf/fpdf"

	"github.com/gzhole/threatlens/internal/taxonomy"
)

// DefaultFile is the bundle name used by --report when the config names
// none.
const DefaultFile = "threatlens_report.pdf"

const (
	pageMargin  = 12.0
	headerH     = 10.0
	captionH    = 6.0
	tableLabelW = 90.0
	tableValueW = 40.0
)

type ChartPage struct {
	Title string
	Path  string
}

type Bundle struct {
	Title     string
	RunID     string
	Generated time.Time
	Records   int
	Averages  taxonomy.EfficacyAverages
	Charts    []ChartPage
}

// Write renders the bundle as PDF onto w. Chart images are read from disk
// and must be PNG.
func Write(w io.Writer, b Bundle) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(b.Title, false)
	pdf.SetCreator("threatlens", false)
	pdf.AliasNbPages("{nb}")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	addSummary(pdf, b)
	for _, c := range b.Charts {
		if err := addChart(pdf, c); err != nil {
			return err
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// WriteFile writes the bundle to path, replacing any existing file, and
// returns the number of bytes written.
func WriteFile(path string, b Bundle) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := Write(f, b); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func addSummary(pdf *gofpdf.Fpdf, b Bundle) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, headerH, b.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	generated := b.Generated
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.CellFormat(0, captionH, "Generated "+generated.UTC().Format(time.RFC1123), "", 1, "L", false, 0, "")
	if b.RunID != "" {
		pdf.CellFormat(0, captionH, "Run "+b.RunID, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, captionH, fmt.Sprintf("%d threat records, %d charts", b.Records, len(b.Charts)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Average Efficacy by Category", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(tableLabelW, 8, "Category", "1", 0, "L", true, 0, "")
	pdf.CellFormat(tableValueW, 8, "Mean Efficacy", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if len(b.Averages) == 0 {
		pdf.CellFormat(tableLabelW+tableValueW, 7, "No threat records", "1", 1, "C", false, 0, "")
		return
	}
	for _, a := range b.Averages {
		pdf.CellFormat(tableLabelW, 7, a.Category.DisplayName(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(tableValueW, 7, fmt.Sprintf("%.2f", a.Mean), "1", 1, "C", false, 0, "")
	}
}

func addChart(pdf *gofpdf.Fpdf, c ChartPage) error {
	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("adding chart %s: %w", c.Path, err)
	}
	defer f.Close()

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	info := pdf.RegisterImageOptionsReader(c.Path, opts, f)
	if pdf.Err() {
		return fmt.Errorf("adding chart %s: %w", c.Path, pdf.Error())
	}

	pdf.AddPage()
	title := strings.Join(strings.Fields(c.Title), " ")
	if title == "" {
		title = filepath.Base(c.Path)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, headerH, title, "", 1, "L", false, 0, "")

	pageW, pageH := pdf.GetPageSize()
	maxW := pageW - 2*pageMargin
	maxH := pageH - 2*pageMargin - headerH - captionH

	// Fit inside the content box keeping the aspect ratio.
	w, h := maxW, maxW*info.Height()/info.Width()
	if h > maxH {
		w, h = maxH*info.Width()/info.Height(), maxH
	}
	x := (pageW - w) / 2
	pdf.ImageOptions(c.Path, x, pdf.GetY(), w, h, false, opts, 0, "")
	if pdf.Err() {
		return fmt.Errorf("adding chart %s: %w", c.Path, pdf.Error())
	}
	return nil
}
