package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gzhole/threatlens/internal/chart"
	"github.com/gzhole/threatlens/internal/config"
	"github.com/gzhole/threatlens/internal/logger"
	"github.com/gzhole/threatlens/internal/metrics"
	"github.com/gzhole/threatlens/internal/report"
	"github.com/gzhole/threatlens/internal/taxonomy"
	"go.uber.org/zap"
)

// session carries everything one command invocation writes through: config,
// console logger, artifact log and metrics.
type session struct {
	cfg       *config.Config
	log       *zap.Logger
	artifacts *logger.ArtifactLogger
	metrics   *metrics.Recorder

	// charts collects successfully written chart images for the report.
	charts []report.ChartPage
}

func newSession() (*session, error) {
	cfg, err := config.Load(configPath, outDir, logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	artifacts, err := logger.New(cfg.ArtifactLog)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize artifact log: %w", err)
	}

	rec, err := metrics.New()
	if err != nil {
		_ = artifacts.Close()
		return nil, err
	}

	log := logger.NewConsole(cfg.LogLevel).With(zap.String("run_id", artifacts.RunID()))
	log.Debug("session started",
		zap.String("config", cfg.ConfigPath),
		zap.String("output_dir", cfg.OutputDir),
		zap.String("artifact_log", cfg.ArtifactLog),
	)

	return &session{cfg: cfg, log: log, artifacts: artifacts, metrics: rec}, nil
}

// record logs one written (or failed) artifact to the artifact log and the
// metrics.
func (s *session) record(kind, name, path string, bytes int64, items int, d time.Duration, err error) {
	event := logger.ArtifactEvent{
		Kind:       kind,
		Name:       name,
		Path:       path,
		Bytes:      bytes,
		Items:      items,
		DurationMS: d.Milliseconds(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	if logErr := s.artifacts.Log(event); logErr != nil {
		s.log.Warn("artifact log write failed", zap.Error(logErr))
	}
	s.metrics.ObserveArtifact(kind, bytes, d, err)
}

func (s *session) renderer() *chart.Renderer {
	r := chart.NewRenderer(s.cfg.Style.ChartStyle(), s.cfg.OutputDir, s.log.Named("chart"))
	r.OnArtifact = func(a chart.Artifact) {
		s.record(logger.KindChart, a.Name, a.Path, a.Bytes, a.Items, a.Duration, a.Err)
		if a.Err == nil {
			s.charts = append(s.charts, report.ChartPage{Title: a.Title, Path: a.Path})
		}
	}
	return r
}

// loadTaxonomy seeds a taxonomy from threatsFile, or from the demonstration
// threats when no file is given.
func (s *session) loadTaxonomy(threatsFile string) (*taxonomy.Taxonomy, error) {
	seeds := taxonomy.DemoThreats()
	if threatsFile != "" {
		loaded, err := taxonomy.LoadThreats(threatsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load threats: %w", err)
		}
		seeds = loaded
	}

	tx := taxonomy.New()
	if err := tx.Seed(seeds); err != nil {
		return nil, err
	}
	s.metrics.SetThreatRecords(tx.Len())
	s.log.Debug("taxonomy seeded", zap.Int("records", tx.Len()))
	return tx, nil
}

func (s *session) exportCSV(tx *taxonomy.Taxonomy, path string) ([]taxonomy.ExportRow, error) {
	if path == "" {
		path = s.cfg.Path(taxonomy.DefaultExportFile)
	}

	start := time.Now()
	rows, err := tx.ExportCSV(path)
	var size int64
	if err == nil {
		if info, statErr := os.Stat(path); statErr == nil {
			size = info.Size()
		}
		s.log.Info("taxonomy exported", zap.String("file", path), zap.Int("rows", len(rows)))
	}
	s.record(logger.KindCSV, taxonomy.DefaultExportFile, path, size, len(rows), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to export taxonomy: %w", err)
	}
	return rows, nil
}

func (s *session) renderEfficacy(tx *taxonomy.Taxonomy) (taxonomy.EfficacyAverages, error) {
	avgs, err := tx.RenderEfficacyChart(s.renderer())
	if err != nil {
		return nil, fmt.Errorf("failed to render efficacy chart: %w", err)
	}
	for _, a := range avgs {
		s.metrics.SetCategoryEfficacy(string(a.Category), a.Mean)
	}
	return avgs, nil
}

// writeReport bundles the charts written so far into the configured PDF.
// It is a no-op when no report is configured.
func (s *session) writeReport(tx *taxonomy.Taxonomy) (string, error) {
	if s.cfg.PDFReport == "" {
		return "", nil
	}

	path := s.cfg.Path(s.cfg.PDFReport)
	b := report.Bundle{
		Title:     "AI Threat Research Report",
		RunID:     s.artifacts.RunID(),
		Generated: time.Now(),
		Charts:    s.charts,
	}
	if tx != nil {
		b.Records = tx.Len()
		b.Averages = tx.AverageEfficacyByCategory()
	}

	start := time.Now()
	size, err := report.WriteFile(path, b)
	s.record(logger.KindReport, filepath.Base(path), path, size, len(b.Charts)+1, time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	s.log.Info("report written", zap.String("file", path), zap.Int("pages", len(b.Charts)+1))
	return path, nil
}

// close exports metrics when configured and releases the logs.
func (s *session) close() error {
	var firstErr error
	if s.cfg.MetricsFile != "" {
		start := time.Now()
		err := s.metrics.WriteTextfile(s.cfg.MetricsFile)
		var size int64
		if info, statErr := os.Stat(s.cfg.MetricsFile); err == nil && statErr == nil {
			size = info.Size()
		}
		if logErr := s.artifacts.Log(logger.ArtifactEvent{
			Kind:       logger.KindMetrics,
			Name:       "metrics",
			Path:       s.cfg.MetricsFile,
			Bytes:      size,
			DurationMS: time.Since(start).Milliseconds(),
			Error:      errString(err),
		}); logErr != nil {
			s.log.Warn("artifact log write failed", zap.Error(logErr))
		}
		if err != nil {
			firstErr = err
		}
	}

	if err := s.artifacts.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	_ = s.log.Sync()
	return firstErr
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
