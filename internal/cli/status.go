package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gzhole/threatlens/internal/chart"
	"github.com/gzhole/threatlens/internal/config"
	"github.com/gzhole/threatlens/internal/taxonomy"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show threatlens status: config, output directory and artifacts",
	Long: `Show which config file is in effect, where output goes, and which of the
expected artifacts already exist.

  threatlens status`,
	SilenceUsage: true,
	RunE:         statusCommand,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// expectedArtifacts lists the files a full run writes, in write order.
func expectedArtifacts() []string {
	return []string{
		taxonomy.DefaultExportFile,
		chart.EfficacyFile,
		chart.ComparativeFile,
		chart.DetectionFile,
		chart.AdversarialFile,
		chart.SWOTFile,
	}
}

func statusCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath, outDir, logPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, title("threatlens Status"))
	fmt.Fprintln(out)

	binPath, err := os.Executable()
	if err != nil {
		binPath = "unknown"
	}
	fmt.Fprintln(out, field("Binary:", fmt.Sprintf("%s (%s)", binPath, Version)))
	fmt.Fprintln(out, field("Config dir:", cfg.ConfigDir))
	checkFile(out, "Config file:", cfg.ConfigPath, "using built-in defaults")
	fmt.Fprintln(out)

	style := cfg.Style.ChartStyle()
	fmt.Fprintln(out, section("Rendering"))
	fmt.Fprintln(out, field("Font:", style.FontVariant))
	fmt.Fprintln(out, field("DPI:", fmt.Sprintf("%d", style.DPI)))
	fmt.Fprintln(out, field("Grid:", fmt.Sprintf("%t (alpha %.2f)", style.Grid, style.GridAlpha)))
	fmt.Fprintln(out)

	fmt.Fprintln(out, section("Output "+absOrSelf(cfg.OutputDir)))
	for _, name := range expectedArtifacts() {
		checkFile(out, name, cfg.Path(name), "not yet generated")
	}
	if cfg.PDFReport != "" {
		checkFile(out, cfg.PDFReport, cfg.Path(cfg.PDFReport), "not yet generated")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, section("Logs"))
	checkFile(out, "Artifact log:", cfg.ArtifactLog, "will start on first run")
	if cfg.MetricsFile != "" {
		checkFile(out, "Metrics:", cfg.MetricsFile, "written at end of next run")
	}
	fmt.Fprintln(out)

	return nil
}

func checkFile(out io.Writer, label, path, missing string) {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintln(out, warn(fmt.Sprintf("%-24s %s", label, dim(missing))))
		return
	}
	detail := formatBytes(info.Size())
	if label != filepath.Base(path) {
		detail = path + " (" + detail + ")"
	}
	fmt.Fprintln(out, ok(fmt.Sprintf("%-24s %s", label, detail)))
}
