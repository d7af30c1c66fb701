package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gzhole/threatlens/internal/chart"
	"github.com/gzhole/threatlens/internal/logger"
	"github.com/gzhole/threatlens/internal/report"
	"github.com/gzhole/threatlens/internal/taxonomy"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so commands can run more
// than once in one test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type testEnv struct {
	out     string
	logPath string
	config  string
}

// newTestEnv isolates HOME and writes a low-DPI config so full runs stay
// fast.
func newTestEnv(t *testing.T, extraConfig string) testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	env := testEnv{
		out:     filepath.Join(dir, "out"),
		logPath: filepath.Join(dir, "artifacts.jsonl"),
		config:  filepath.Join(dir, "config.yaml"),
	}
	cfg := "style:\n  dpi: 20\n" + extraConfig
	if err := os.WriteFile(env.config, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	return env
}

func (e testEnv) execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args, "--config", e.config, "--out", e.out, "--log", e.logPath, "--log-level", "error"))
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustExist(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
	if info.Size() == 0 {
		t.Errorf("expected %s to be non-empty", path)
	}
}

func mustNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s not to exist", path)
	}
}

func TestRun_FullDemonstration(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.execute(t, "run", "--pdf", "bundle.pdf")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}

	for _, name := range expectedArtifacts() {
		mustExist(t, filepath.Join(env.out, name))
	}
	mustExist(t, filepath.Join(env.out, "bundle.pdf"))

	if !strings.Contains(out, "Exported 2 threats") {
		t.Errorf("expected export summary in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Social Engineering") || !strings.Contains(out, "8.50") {
		t.Errorf("expected efficacy averages in output, got:\n%s", out)
	}

	events, err := logger.ReadEvents(env.logPath)
	if err != nil {
		t.Fatal(err)
	}
	// CSV, five charts, report.
	if len(events) != 7 {
		t.Fatalf("expected 7 artifact events, got %d", len(events))
	}
	runID := events[0].RunID
	for _, e := range events {
		if e.RunID != runID {
			t.Errorf("expected one run id, got %s and %s", runID, e.RunID)
		}
		if e.Failed() {
			t.Errorf("unexpected failed event: %+v", e)
		}
	}
	if events[0].Kind != logger.KindCSV || events[len(events)-1].Kind != logger.KindReport {
		t.Errorf("unexpected event order: first %s, last %s", events[0].Kind, events[len(events)-1].Kind)
	}
}

func TestRoot_RunsDemonstration(t *testing.T) {
	env := newTestEnv(t, "")

	if out, err := env.execute(t); err != nil {
		t.Fatalf("root command failed: %v\n%s", err, out)
	}
	mustExist(t, filepath.Join(env.out, chart.SWOTFile))
	mustNotExist(t, filepath.Join(env.out, "threatlens_report.pdf"))
}

func TestRun_MetricsFile(t *testing.T) {
	metricsPath := filepath.Join(t.TempDir(), "threatlens.prom")
	env := newTestEnv(t, "metrics_file: "+metricsPath+"\n")

	if out, err := env.execute(t, "run"); err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}

	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics file missing: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"threatlens_threat_records 2",
		`threatlens_artifacts_written_total{kind="chart"} 5`,
		`threatlens_category_efficacy_mean{category="social_engineering"} 8.5`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestRun_AbsolutePDFPath(t *testing.T) {
	env := newTestEnv(t, "")
	abs := filepath.Join(t.TempDir(), "bundle.pdf")

	out, err := env.execute(t, "run", "--pdf", abs)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	mustExist(t, abs)
	mustNotExist(t, filepath.Join(env.out, "bundle.pdf"))
}

func TestCharts_ReportFlagUsesDefaultFile(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.execute(t, "charts", "--only", "swot", "--report")
	if err != nil {
		t.Fatalf("charts failed: %v\n%s", err, out)
	}
	mustExist(t, filepath.Join(env.out, report.DefaultFile))
}

func TestRun_UnknownFontVariant(t *testing.T) {
	env := newTestEnv(t, "  font_variant: Arial\n")

	_, err := env.execute(t, "run")
	if err == nil || !strings.Contains(err.Error(), "font_variant") {
		t.Fatalf("expected font_variant error, got %v", err)
	}
	mustNotExist(t, filepath.Join(env.out, chart.ComparativeFile))
}

func TestTaxonomy_NoChart(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.execute(t, "taxonomy", "--no-chart")
	if err != nil {
		t.Fatalf("taxonomy failed: %v\n%s", err, out)
	}
	mustExist(t, filepath.Join(env.out, taxonomy.DefaultExportFile))
	mustNotExist(t, filepath.Join(env.out, chart.EfficacyFile))
	if !strings.Contains(out, "Malware Generation") {
		t.Errorf("expected averages in output, got:\n%s", out)
	}
}

func TestTaxonomy_CustomCSVAndThreats(t *testing.T) {
	env := newTestEnv(t, "")
	dir := t.TempDir()

	threats := filepath.Join(dir, "threats.yaml")
	seed := `threats:
  - category: defense_evasion
    name: Adaptive Evasion
    techniques: [Behavior Mimicry]
    tools: [RL Agents]
    efficacy: 6
  - category: defense_evasion
    name: Model Inversion
    techniques: [Query Probing]
    tools: [Shadow Models]
    efficacy: 8
`
	if err := os.WriteFile(threats, []byte(seed), 0644); err != nil {
		t.Fatal(err)
	}
	csvPath := filepath.Join(dir, "catalog.csv")

	out, err := env.execute(t, "taxonomy", "--threats", threats, "--csv", csvPath)
	if err != nil {
		t.Fatalf("taxonomy failed: %v\n%s", err, out)
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Defense Evasion,Adaptive Evasion,Behavior Mimicry,RL Agents,6.0") {
		t.Errorf("unexpected CSV:\n%s", data)
	}
	mustExist(t, filepath.Join(env.out, chart.EfficacyFile))
	if !strings.Contains(out, "7.00") {
		t.Errorf("expected mean 7.00 in output, got:\n%s", out)
	}
}

func TestTaxonomy_UnknownCategoryInSeed(t *testing.T) {
	env := newTestEnv(t, "")
	threats := filepath.Join(t.TempDir(), "threats.yaml")
	seed := "threats:\n  - category: quantum_attacks\n    name: Qubit Flood\n    efficacy: 9\n"
	if err := os.WriteFile(threats, []byte(seed), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := env.execute(t, "taxonomy", "--threats", threats)
	if !errors.Is(err, taxonomy.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	mustNotExist(t, filepath.Join(env.out, taxonomy.DefaultExportFile))
}

func TestCharts_Only(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.execute(t, "charts", "--only", "swot", "--only", "detection")
	if err != nil {
		t.Fatalf("charts failed: %v\n%s", err, out)
	}
	mustExist(t, filepath.Join(env.out, chart.SWOTFile))
	mustExist(t, filepath.Join(env.out, chart.DetectionFile))
	mustNotExist(t, filepath.Join(env.out, chart.ComparativeFile))
	mustNotExist(t, filepath.Join(env.out, chart.AdversarialFile))
}

func TestCharts_UnknownName(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.execute(t, "charts", "--only", "pie")
	if err == nil || !strings.Contains(err.Error(), "unknown chart") {
		t.Fatalf("expected unknown chart error, got %v", err)
	}
	mustNotExist(t, env.out)
}

func TestLog_FilterAndSummary(t *testing.T) {
	env := newTestEnv(t, "")

	lg, err := logger.New(env.logPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range []logger.ArtifactEvent{
		{Timestamp: "2026-03-01T00:00:00Z", Kind: logger.KindCSV, Path: "/out/threat_taxonomy.csv", Bytes: 200},
		{Timestamp: "2026-03-01T00:00:01Z", Kind: logger.KindChart, Path: "/out/a.png", Bytes: 2048},
		{Timestamp: "2026-03-01T00:00:02Z", Kind: logger.KindChart, Path: "/out/b.png", Error: "disk full"},
	} {
		if err := lg.Log(e); err != nil {
			t.Fatal(err)
		}
	}
	_ = lg.Close()

	out, err := env.execute(t, "log", "--kind", "chart", "--last", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "b.png") || strings.Contains(out, "a.png") {
		t.Errorf("expected only the last chart event, got:\n%s", out)
	}
	if !strings.Contains(out, "disk full") {
		t.Errorf("expected error detail, got:\n%s", out)
	}

	out, err = env.execute(t, "log", "--summary")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Total events:", "3", "Failures:", "Failed writes"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestLog_Empty(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.execute(t, "log")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No artifact log entries found.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t, "")
	if err := os.MkdirAll(env.out, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(env.out, chart.SWOTFile), []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := env.execute(t, "status")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "DPI:") || !strings.Contains(out, "20") {
		t.Errorf("expected configured DPI, got:\n%s", out)
	}
	if !strings.Contains(out, chart.SWOTFile+" ") || !strings.Contains(out, "3 B") {
		t.Errorf("expected existing SWOT file, got:\n%s", out)
	}
	if !strings.Contains(out, "not yet generated") {
		t.Errorf("expected missing artifacts flagged, got:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "threatlens "+Version) {
		t.Errorf("unexpected version output:\n%s", out)
	}
}

func TestChartNames(t *testing.T) {
	names, err := chartNames(nil)
	if err != nil || len(names) != len(chart.ChartNames) {
		t.Errorf("expected all charts, got %v, %v", names, err)
	}
	if _, err := chartNames([]string{"swot", "bogus"}); err == nil {
		t.Error("expected error for unknown chart")
	}
}
