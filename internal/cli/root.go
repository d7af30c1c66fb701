package cli

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	outDir     string
	logPath    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "threatlens",
	Short: "threatlens - AI threat taxonomy and research chart generator",
	Long: `threatlens catalogs AI-enabled threats by category, exports the catalog
to CSV, and renders the research figures (efficacy comparison, detection
times, adversarial success rates, SWOT) as 300 DPI PNG images.

Run without a subcommand to perform the full demonstration run.`,
	SilenceUsage: true,
	RunE:         runCommand,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config YAML file (default: ~/.threatlens/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", "", "Directory for CSV, chart and report files (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Path to artifact log file (default: ~/.threatlens/artifacts.jsonl)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Console log level: debug, info, warn, error")
	addRunFlags(rootCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
