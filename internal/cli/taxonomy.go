package cli

import (
	"fmt"

	"github.com/gzhole/threatlens/internal/taxonomy"
	"github.com/spf13/cobra"
)

var (
	taxonomyThreats string
	taxonomyCSV     string
	taxonomyNoChart bool
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Seed the threat taxonomy, export CSV and render the efficacy chart",
	Long: `Build the threat taxonomy and export it. The efficacy chart is rendered
from the per-category averages unless --no-chart is given.

Examples:
  threatlens taxonomy
  threatlens taxonomy --threats ./threats.yaml --csv ./catalog.csv
  threatlens taxonomy --no-chart`,
	SilenceUsage: true,
	RunE:         taxonomyCommand,
}

func init() {
	taxonomyCmd.Flags().StringVar(&taxonomyThreats, "threats", "", "YAML file of threats to seed instead of the demonstration set")
	taxonomyCmd.Flags().StringVar(&taxonomyCSV, "csv", "", "CSV output path (default: <out>/threat_taxonomy.csv)")
	taxonomyCmd.Flags().BoolVar(&taxonomyNoChart, "no-chart", false, "Skip the efficacy chart")
	rootCmd.AddCommand(taxonomyCmd)
}

func taxonomyCommand(cmd *cobra.Command, args []string) (err error) {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.close(); err == nil {
			err = closeErr
		}
	}()

	out := cmd.OutOrStdout()

	tx, err := s.loadTaxonomy(taxonomyThreats)
	if err != nil {
		return err
	}

	rows, err := s.exportCSV(tx, taxonomyCSV)
	if err != nil {
		return err
	}

	if taxonomyNoChart {
		printAverages(out, tx.AverageEfficacyByCategory())
	} else {
		avgs, err := s.renderEfficacy(tx)
		if err != nil {
			return err
		}
		printAverages(out, avgs)
	}

	csvPath := taxonomyCSV
	if csvPath == "" {
		csvPath = s.cfg.Path(taxonomy.DefaultExportFile)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, ok(fmt.Sprintf("Exported %d threats to %s", len(rows), csvPath)))
	for _, c := range s.charts {
		fmt.Fprintln(out, ok("Chart: "+c.Path))
	}
	return nil
}
