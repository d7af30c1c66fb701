package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("", "", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	wantDir := filepath.Join(home, DefaultConfigDir)
	if cfg.ConfigDir != wantDir {
		t.Errorf("expected config dir %s, got %s", wantDir, cfg.ConfigDir)
	}
	if _, err := os.Stat(wantDir); err != nil {
		t.Errorf("config dir not created: %v", err)
	}
	if cfg.OutputDir != "." {
		t.Errorf("expected output dir '.', got %q", cfg.OutputDir)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("expected log level %q, got %q", DefaultLogLevel, cfg.LogLevel)
	}
	if cfg.ArtifactLog != filepath.Join(wantDir, DefaultArtifactLog) {
		t.Errorf("unexpected artifact log path %s", cfg.ArtifactLog)
	}

	style := cfg.Style.ChartStyle()
	if style.DPI != 300 || !style.Grid || style.FontVariant != "Sans" {
		t.Errorf("unexpected default style: %+v", style)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "threatlens.yaml")
	configYAML := `output_dir: /tmp/reports
log_level: debug
metrics_file: /tmp/reports/threatlens.prom
pdf_report: bundle.pdf
style:
  font_variant: Serif
  grid: false
  dpi: 150
`
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, "", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutputDir != "/tmp/reports" {
		t.Errorf("expected output dir from file, got %q", cfg.OutputDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.PDFReport != "bundle.pdf" {
		t.Errorf("expected pdf report bundle.pdf, got %q", cfg.PDFReport)
	}

	style := cfg.Style.ChartStyle()
	if style.Grid {
		t.Error("expected grid disabled by explicit false")
	}
	if style.DPI != 150 {
		t.Errorf("expected DPI 150, got %d", style.DPI)
	}
	if style.FontVariant != "Serif" {
		t.Errorf("expected Serif, got %q", style.FontVariant)
	}
	if style.GridAlpha != 0.3 {
		t.Errorf("expected default grid alpha, got %v", style.GridAlpha)
	}
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "threatlens.yaml")
	if err := os.WriteFile(path, []byte("output_dir: from-file\nartifact_log: file.jsonl\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, "from-flag", "flag.jsonl")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "from-flag" {
		t.Errorf("expected flag output dir, got %q", cfg.OutputDir)
	}
	if cfg.ArtifactLog != "flag.jsonl" {
		t.Errorf("expected flag artifact log, got %q", cfg.ArtifactLog)
	}
	if got := cfg.Path("figure.png"); got != filepath.Join("from-flag", "figure.png") {
		t.Errorf("unexpected Path result %q", got)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("/nonexistent/threatlens.yaml", "", "")
	if err != nil {
		t.Fatalf("missing config file should not fail: %v", err)
	}
	if cfg.OutputDir != "." {
		t.Errorf("expected default output dir, got %q", cfg.OutputDir)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("style: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, "", ""); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestLoad_UnknownFontVariant(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "threatlens.yaml")
	if err := os.WriteFile(path, []byte("style:\n  font_variant: Arial\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path, "", "")
	if err == nil || !strings.Contains(err.Error(), "font_variant") {
		t.Fatalf("expected font_variant error, got %v", err)
	}
}

func TestLoad_GridAlpha(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    float64
		wantErr bool
	}{
		{"absent keeps default", "style:\n  dpi: 72\n", 0.3, false},
		{"explicit zero", "style:\n  grid_alpha: 0\n", 0, false},
		{"explicit value", "style:\n  grid_alpha: 0.75\n", 0.75, false},
		{"out of range", "style:\n  grid_alpha: 2\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			path := filepath.Join(t.TempDir(), "threatlens.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path, "", "")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if got := cfg.Style.ChartStyle().GridAlpha; got != tt.want {
				t.Errorf("expected grid alpha %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPath_Absolute(t *testing.T) {
	cfg := &Config{OutputDir: "figures"}
	abs := filepath.Join(t.TempDir(), "bundle.pdf")

	if got := cfg.Path(abs); got != abs {
		t.Errorf("expected absolute path unchanged, got %q", got)
	}
	if got := cfg.Path("bundle.pdf"); got != filepath.Join("figures", "bundle.pdf") {
		t.Errorf("expected relative path under output dir, got %q", got)
	}
}
