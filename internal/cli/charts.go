package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var chartsOnly []string

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render the research charts",
	Long: `Render the research charts (comparative, detection, adversarial, swot)
into the output directory. Existing files are overwritten.

Examples:
  threatlens charts
  threatlens charts --only swot --only detection
  threatlens charts --out ./figures --pdf charts.pdf`,
	SilenceUsage: true,
	RunE:         chartsCommand,
}

func init() {
	chartsCmd.Flags().StringSliceVar(&chartsOnly, "only", nil, "Render only the named charts (repeatable)")
	addReportFlags(chartsCmd)
	rootCmd.AddCommand(chartsCmd)
}

func chartsCommand(cmd *cobra.Command, args []string) (err error) {
	names, err := chartNames(chartsOnly)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.close(); err == nil {
			err = closeErr
		}
	}()
	applyReportFlags(s)

	if _, err := s.renderer().GenerateOnly(cmd.Context(), names); err != nil {
		return fmt.Errorf("failed to generate charts: %w", err)
	}

	reportPath, err := s.writeReport(nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, c := range s.charts {
		fmt.Fprintln(out, ok(c.Path))
	}
	if reportPath != "" {
		fmt.Fprintln(out, ok("Report: "+reportPath))
	}
	return nil
}
