package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gzhole/threatlens/internal/config"
	"github.com/gzhole/threatlens/internal/logger"
	"github.com/spf13/cobra"
)

var (
	logFilterKind   string
	logFilterFailed bool
	logLast         int
	logSummary      bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View and filter the artifact log",
	Long: `View the threatlens artifact log: one entry per CSV, chart, report or
metrics file written.

Examples:
  threatlens log                    # Show all entries
  threatlens log --last 10          # Show last 10 entries
  threatlens log --kind chart       # Show only chart files
  threatlens log --failed           # Show only failed writes
  threatlens log --summary          # Show summary stats`,
	SilenceUsage: true,
	RunE:         logCommand,
}

func init() {
	logCmd.Flags().StringVar(&logFilterKind, "kind", "", "Filter by kind (csv, chart, report, metrics)")
	logCmd.Flags().BoolVar(&logFilterFailed, "failed", false, "Show only failed writes")
	logCmd.Flags().IntVar(&logLast, "last", 0, "Show last N entries")
	logCmd.Flags().BoolVar(&logSummary, "summary", false, "Show summary statistics")
	rootCmd.AddCommand(logCmd)
}

func logCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath, outDir, logPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	events, err := logger.ReadEvents(cfg.ArtifactLog)
	if err != nil {
		return fmt.Errorf("failed to read artifact log: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No artifact log entries found.")
		return nil
	}

	filtered := filterEvents(events)

	if logLast > 0 && logLast < len(filtered) {
		filtered = filtered[len(filtered)-logLast:]
	}

	if logSummary {
		printSummary(out, events)
		return nil
	}

	printEvents(out, filtered)
	return nil
}

func filterEvents(events []logger.ArtifactEvent) []logger.ArtifactEvent {
	if logFilterKind == "" && !logFilterFailed {
		return events
	}

	var filtered []logger.ArtifactEvent
	for _, e := range events {
		if logFilterKind != "" && !strings.EqualFold(e.Kind, logFilterKind) {
			continue
		}
		if logFilterFailed && !e.Failed() {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func printEvents(out io.Writer, events []logger.ArtifactEvent) {
	for _, e := range events {
		line := fmt.Sprintf("%s %-7s %s", formatTimestamp(e.Timestamp), e.Kind, e.Path)
		if e.Failed() {
			fmt.Fprintln(out, failed(line))
			fmt.Fprintf(out, "     Error: %s\n", e.Error)
			continue
		}
		fmt.Fprintln(out, ok(line))
		fmt.Fprintf(out, "     %s, %d items, %dms  %s\n", formatBytes(e.Bytes), e.Items, e.DurationMS, dim("run "+shortRunID(e.RunID)))
	}
}

func printSummary(out io.Writer, all []logger.ArtifactEvent) {
	counts := map[string]int{}
	runs := map[string]bool{}
	failures := 0
	var total int64

	for _, e := range all {
		counts[e.Kind]++
		runs[e.RunID] = true
		if e.Failed() {
			failures++
			continue
		}
		total += e.Bytes
	}

	fmt.Fprintln(out, title("threatlens Artifact Summary"))
	fmt.Fprintln(out, field("Total events:", fmt.Sprintf("%d", len(all))))
	fmt.Fprintln(out, field("Runs:", fmt.Sprintf("%d", len(runs))))
	for _, kind := range []string{logger.KindCSV, logger.KindChart, logger.KindReport, logger.KindMetrics} {
		fmt.Fprintln(out, field(kind+":", fmt.Sprintf("%d", counts[kind])))
	}
	fmt.Fprintln(out, field("Failures:", fmt.Sprintf("%d", failures)))
	fmt.Fprintln(out, field("Bytes written:", formatBytes(total)))

	fmt.Fprintln(out, field("First event:", formatTimestamp(all[0].Timestamp)))
	fmt.Fprintln(out, field("Last event:", formatTimestamp(all[len(all)-1].Timestamp)))

	var failedEvents []logger.ArtifactEvent
	for _, e := range all {
		if e.Failed() {
			failedEvents = append(failedEvents, e)
		}
	}
	if len(failedEvents) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, section("Failed writes"))
		limit := len(failedEvents)
		if limit > 10 {
			limit = 10
		}
		for _, e := range failedEvents[len(failedEvents)-limit:] {
			fmt.Fprintf(out, "    %s %s: %s\n", formatTimestamp(e.Timestamp), e.Path, e.Error)
		}
	}
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
