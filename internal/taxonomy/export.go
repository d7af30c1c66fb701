package taxonomy

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// DefaultExportFile is the CSV name used by the demonstration run.
const DefaultExportFile = "threat_taxonomy.csv"

// exportColumns is the fixed CSV header.
var exportColumns = []string{"Category", "Threat Name", "Techniques", "Tools", "Efficacy"}

// ExportRow is one flattened ThreatRecord as written to CSV.
type ExportRow struct {
	Category   string
	ThreatName string
	Techniques string
	Tools      string
	Efficacy   float64
}

func (r ExportRow) fields() []string {
	return []string{
		r.Category,
		r.ThreatName,
		r.Techniques,
		r.Tools,
		formatEfficacy(r.Efficacy),
	}
}

// formatEfficacy writes the shortest exact decimal, keeping one fractional
// digit on whole numbers (7 is written as "7.0").
func formatEfficacy(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// Rows flattens the taxonomy in category order, one row per record.
func (t *Taxonomy) Rows() []ExportRow {
	rows := make([]ExportRow, 0, t.Len())
	for _, c := range categoryOrder {
		for _, r := range t.categories[c] {
			rows = append(rows, ExportRow{
				Category:   c.DisplayName(),
				ThreatName: r.Name,
				Techniques: strings.Join(r.Techniques, ", "),
				Tools:      strings.Join(r.Tools, ", "),
				Efficacy:   r.Efficacy,
			})
		}
	}
	return rows
}

// WriteCSV writes the header and every row to w.
func (t *Taxonomy) WriteCSV(w io.Writer) ([]ExportRow, error) {
	rows := t.Rows()

	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := cw.Write(row.fields()); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return rows, nil
}

// ExportCSV writes the taxonomy to path, replacing any existing file, and
// returns the rows that were written.
func (t *Taxonomy) ExportCSV(path string) ([]ExportRow, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	rows, err := t.WriteCSV(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", path, err)
	}
	return rows, nil
}
