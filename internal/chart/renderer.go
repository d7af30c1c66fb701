package chart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Artifact describes one image written by a Renderer.
type Artifact struct {
	Name     string
	Title    string
	Path     string
	Bytes    int64
	Items    int
	Duration time.Duration
	Err      error
}

// Renderer is a rendering session: a style, an output directory and a
// logger. Renderers share no mutable state with each other.
type Renderer struct {
	style  Style
	outDir string
	logger *zap.Logger

	// OnArtifact, when set, is called after every save attempt.
	OnArtifact func(Artifact)
}

// NewRenderer returns a session writing into outDir ("" means the working
// directory). A nil logger discards output.
func NewRenderer(style Style, outDir string, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if outDir == "" {
		outDir = "."
	}
	return &Renderer{
		style:  style.withDefaults(),
		outDir: outDir,
		logger: logger,
	}
}

// Style returns the session style.
func (r *Renderer) Style() Style {
	return r.style
}

// OutputPath returns where name is written.
func (r *Renderer) OutputPath(name string) string {
	return filepath.Join(r.outDir, name)
}

func (r *Renderer) save(name string, fig *Figure, items int) error {
	path := r.OutputPath(name)
	start := time.Now()
	err := fig.Save(path)

	art := Artifact{Name: name, Title: fig.Caption(), Path: path, Items: items, Duration: time.Since(start), Err: err}
	if err == nil {
		if info, statErr := os.Stat(path); statErr == nil {
			art.Bytes = info.Size()
		}
		r.logger.Info("chart written",
			zap.String("file", path),
			zap.Int64("bytes", art.Bytes),
			zap.Int("dpi", r.style.DPI),
			zap.Duration("took", art.Duration),
		)
	} else {
		r.logger.Error("chart failed", zap.String("file", path), zap.Error(err))
	}

	if r.OnArtifact != nil {
		r.OnArtifact(art)
	}
	return err
}

// ChartNames lists the research charts in demonstration order.
var ChartNames = []string{"comparative", "detection", "adversarial", "swot"}

// GenerateAll renders the four research charts with their default data in
// order and stops at the first failure. ctx is checked between charts.
func (r *Renderer) GenerateAll(ctx context.Context) ([]*Figure, error) {
	return r.GenerateOnly(ctx, ChartNames)
}

// Routines maps the names accepted by GenerateOnly to chart routines.
func (r *Renderer) Routines() map[string]func() (*Figure, error) {
	return map[string]func() (*Figure, error){
		"comparative": func() (*Figure, error) { return r.ComparativeEfficacy(DefaultComparative) },
		"detection":   func() (*Figure, error) { return r.DetectionTimes(DefaultDetectionTimes) },
		"adversarial": func() (*Figure, error) { return r.AdversarialSuccess(DefaultAdversarial) },
		"swot":        func() (*Figure, error) { return r.SWOT(DefaultSWOT) },
	}
}

// GenerateOnly renders the named research charts in the given order.
func (r *Renderer) GenerateOnly(ctx context.Context, names []string) ([]*Figure, error) {
	routines := r.Routines()
	figs := make([]*Figure, 0, len(names))
	for _, name := range names {
		run, ok := routines[name]
		if !ok {
			return figs, fmt.Errorf("unknown chart %q", name)
		}
		if err := ctx.Err(); err != nil {
			return figs, err
		}
		fig, err := run()
		if err != nil {
			return figs, fmt.Errorf("%s: %w", name, err)
		}
		figs = append(figs, fig)
	}
	return figs, nil
}
