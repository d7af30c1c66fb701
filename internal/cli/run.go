package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gzhole/threatlens/internal/chart"
	"github.com/gzhole/threatlens/internal/report"
	"github.com/gzhole/threatlens/internal/taxonomy"
	"github.com/spf13/cobra"
)

var (
	threatsPath string
	pdfPath     string
	withReport  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full demonstration: taxonomy, CSV, efficacy chart and research charts",
	Long: `Seed the threat taxonomy, export it to CSV, render the efficacy chart,
then render the four research charts. Optionally bundle every chart into a
PDF report and export run metrics.

Examples:
  threatlens run
  threatlens run --out ./figures
  threatlens run --threats ./threats.yaml --pdf report.pdf
  threatlens run --report`,
	SilenceUsage: true,
	RunE:         runCommand,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&threatsPath, "threats", "", "YAML file of threats to seed instead of the demonstration set")
	addReportFlags(cmd)
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Bundle the charts into this PDF (overrides pdf_report in config)")
	cmd.Flags().BoolVar(&withReport, "report", false, "Bundle the charts into a PDF (pdf_report from config, or "+report.DefaultFile+")")
}

// applyReportFlags resolves which PDF, if any, the session writes.
func applyReportFlags(s *session) {
	switch {
	case pdfPath != "":
		s.cfg.PDFReport = pdfPath
	case withReport && s.cfg.PDFReport == "":
		s.cfg.PDFReport = report.DefaultFile
	}
}

func runCommand(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	applyReportFlags(s)

	err = runDemo(cmd.Context(), s, cmd.OutOrStdout())
	if closeErr := s.close(); err == nil {
		err = closeErr
	}
	return err
}

func runDemo(ctx context.Context, s *session, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	tx, err := s.loadTaxonomy(threatsPath)
	if err != nil {
		return err
	}

	rows, err := s.exportCSV(tx, "")
	if err != nil {
		return err
	}

	avgs, err := s.renderEfficacy(tx)
	if err != nil {
		return err
	}
	printAverages(out, avgs)

	if _, err := s.renderer().GenerateAll(ctx); err != nil {
		return fmt.Errorf("failed to generate charts: %w", err)
	}

	reportPath, err := s.writeReport(tx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, ok(fmt.Sprintf("Exported %d threats to %s", len(rows), s.cfg.Path(taxonomy.DefaultExportFile))))
	fmt.Fprintln(out, ok(fmt.Sprintf("Generated %d charts in %s", len(s.charts), absOrSelf(s.cfg.OutputDir))))
	for _, c := range s.charts {
		fmt.Fprintln(out, "    "+filepath.Base(c.Path))
	}
	if reportPath != "" {
		fmt.Fprintln(out, ok("Report: "+reportPath))
	}
	return nil
}

func printAverages(out io.Writer, avgs taxonomy.EfficacyAverages) {
	fmt.Fprintln(out, title("Average Efficacy by Category"))
	if len(avgs) == 0 {
		fmt.Fprintln(out, dim("  no threat records"))
		return
	}
	for _, a := range avgs {
		fmt.Fprintln(out, field(a.Category.DisplayName(), fmt.Sprintf("%.2f", a.Mean)))
	}
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// chartNames validates names against the known research charts, returning
// them all when names is empty.
func chartNames(names []string) ([]string, error) {
	if len(names) == 0 {
		return chart.ChartNames, nil
	}
	known := map[string]bool{}
	for _, n := range chart.ChartNames {
		known[n] = true
	}
	for _, n := range names {
		if !known[n] {
			return nil, fmt.Errorf("unknown chart %q (choose from %v)", n, chart.ChartNames)
		}
	}
	return names, nil
}
