package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gzhole/threatlens/internal/chart"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir   = ".threatlens"
	DefaultConfigFile  = "config.yaml"
	DefaultArtifactLog = "artifacts.jsonl"
	DefaultLogLevel    = "info"
)

type Config struct {
	ConfigPath  string      `yaml:"-"`
	ConfigDir   string      `yaml:"-"`
	OutputDir   string      `yaml:"output_dir"`
	LogLevel    string      `yaml:"log_level"`
	ArtifactLog string      `yaml:"artifact_log"`
	MetricsFile string      `yaml:"metrics_file"`
	PDFReport   string      `yaml:"pdf_report"`
	Style       StyleConfig `yaml:"style"`
}

// StyleConfig mirrors chart.Style in YAML form. Grid and GridAlpha are
// pointers so explicit "grid: false" or "grid_alpha: 0" can be told apart
// from an absent key.
type StyleConfig struct {
	FontVariant string   `yaml:"font_variant"`
	Grid        *bool    `yaml:"grid"`
	GridAlpha   *float64 `yaml:"grid_alpha"`
	DPI         int      `yaml:"dpi"`
}

func (s StyleConfig) validate() error {
	if s.FontVariant != "" && !chart.ValidFontVariant(s.FontVariant) {
		return fmt.Errorf("style.font_variant %q: must be one of %v", s.FontVariant, chart.FontVariants)
	}
	if s.GridAlpha != nil && (*s.GridAlpha < 0 || *s.GridAlpha > 1) {
		return fmt.Errorf("style.grid_alpha %v: must be between 0 and 1", *s.GridAlpha)
	}
	return nil
}

// ChartStyle returns the rendering style with unset fields defaulted.
func (s StyleConfig) ChartStyle() chart.Style {
	style := chart.DefaultStyle()
	if s.FontVariant != "" {
		style.FontVariant = s.FontVariant
	}
	if s.Grid != nil {
		style.Grid = *s.Grid
	}
	if s.GridAlpha != nil {
		style.GridAlpha = *s.GridAlpha
	}
	if s.DPI > 0 {
		style.DPI = s.DPI
	}
	return style
}

// Load builds the configuration: defaults, then the YAML file at
// configPath (default ~/.threatlens/config.yaml, skipped when missing),
// then the non-empty overrides.
func Load(configPath, outDir, artifactLog string) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configDir := filepath.Join(homeDir, DefaultConfigDir)

	if err := ensureDir(configDir); err != nil {
		return nil, err
	}

	cfg := &Config{
		ConfigDir: configDir,
		OutputDir: ".",
		LogLevel:  DefaultLogLevel,
	}

	if configPath != "" {
		cfg.ConfigPath = configPath
	} else {
		cfg.ConfigPath = filepath.Join(configDir, DefaultConfigFile)
	}

	if err := cfg.readFile(); err != nil {
		return nil, err
	}
	if err := cfg.Style.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.ConfigPath, err)
	}

	if outDir != "" {
		cfg.OutputDir = outDir
	}
	if artifactLog != "" {
		cfg.ArtifactLog = artifactLog
	}
	if cfg.ArtifactLog == "" {
		cfg.ArtifactLog = filepath.Join(configDir, DefaultArtifactLog)
	}

	return cfg, nil
}

func (c *Config) readFile() error {
	data, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Path resolves name inside the output directory. Absolute names are
// returned unchanged.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}
