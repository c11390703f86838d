// Package charts renders the methodology article images with gg.
//
// Every chart is drawn on its own canvas sized in figure inches and written
// as one PNG into the output directory. Charts are rendered strictly one
// after another; re-running overwrites the same file names.
package charts

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"methodology-charts/internal/infra/fs"
	logging "methodology-charts/internal/infra/log"
	"methodology-charts/internal/methodology"

	"go.uber.org/zap"
)

// Chart describes one output image.
type Chart struct {
	Name   string  // short id used by --only
	File   string  // file name inside the output directory
	Width  float64 // inches
	Height float64 // inches
	draw   func(c *canvas) error
}

const (
	WeightPieName           = "weight-pie"
	AuditCoverageName       = "audit-coverage"
	LiquidityExitName       = "liquidity-exit"
	GovernanceStructureName = "governance-structure"
	AaveRadarName           = "aave-radar"
	ScoreComponentsName     = "score-components"
)

// Catalog returns the six charts in render order.
func Catalog() []Chart {
	return []Chart{
		{
			Name: WeightPieName, File: "weight-distribution-pie.png", Width: 10, Height: 8,
			draw: drawWeightPie,
		},
		{
			Name: AuditCoverageName, File: "audit-coverage-scoring.png", Width: 12, Height: 6,
			draw: func(c *canvas) error { return drawRubric(c, methodology.AuditCoverage) },
		},
		{
			Name: LiquidityExitName, File: "liquidity-exit-scoring.png", Width: 12, Height: 7,
			draw: func(c *canvas) error { return drawRubric(c, methodology.LiquidityExit) },
		},
		{
			Name: GovernanceStructureName, File: "governance-structure-scoring.png", Width: 12, Height: 6,
			draw: func(c *canvas) error { return drawRubric(c, methodology.GovernanceStructure) },
		},
		{
			Name: AaveRadarName, File: "aave-radar-example.png", Width: 10, Height: 10,
			draw: func(c *canvas) error { return drawRadar(c, methodology.Aave, methodology.Dimensions) },
		},
		{
			Name: ScoreComponentsName, File: "score-components.png", Width: 14, Height: 6,
			draw: func(c *canvas) error { return drawComponents(c, methodology.Dimensions) },
		},
	}
}

// Lookup finds a catalog chart by name or file name.
func Lookup(name string) (Chart, bool) {
	for _, ch := range Catalog() {
		if ch.Name == name || ch.File == name {
			return ch, true
		}
	}
	return Chart{}, false
}

// Names lists the catalog chart names.
func Names() []string {
	var names []string
	for _, ch := range Catalog() {
		names = append(names, ch.Name)
	}
	return names
}

// Generator writes charts into one output directory.
type Generator struct {
	outDir   string
	theme    Theme
	fontPath string
	fonts    *fontSet
}

type Option func(*Generator)

// WithDPI sets pixels per figure inch.
func WithDPI(dpi float64) Option {
	return func(g *Generator) { g.theme.DPI = dpi }
}

// WithFontPath replaces the embedded regular font with a TTF file.
func WithFontPath(path string) Option {
	return func(g *Generator) { g.fontPath = path }
}

func NewGenerator(outDir string, opts ...Option) (*Generator, error) {
	g := &Generator{outDir: outDir, theme: DefaultTheme()}
	for _, opt := range opts {
		opt(g)
	}
	if g.outDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if g.theme.DPI <= 0 {
		return nil, fmt.Errorf("dpi must be positive, got %v", g.theme.DPI)
	}

	fonts, err := loadFonts(g.fontPath)
	if err != nil {
		return nil, err
	}
	g.fonts = fonts

	return g, nil
}

// OutDir returns the directory charts are written to.
func (g *Generator) OutDir() string {
	return g.outDir
}

// Path returns where chart ch is written.
func (g *Generator) Path(ch Chart) string {
	return filepath.Join(g.outDir, ch.File)
}

// Render draws ch and writes it to its file, replacing any previous version.
func (g *Generator) Render(ctx context.Context, ch Chart) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start := time.Now()

	if err := fs.EnsureDir(g.outDir); err != nil {
		return "", err
	}

	c := newCanvas(g.theme, g.fonts, ch.Width, ch.Height)
	if err := ch.draw(c); err != nil {
		logging.LogError("Failed to draw chart", zap.String("chart", ch.Name), zap.Error(err))
		return "", fmt.Errorf("failed to draw %s: %w", ch.Name, err)
	}

	path := g.Path(ch)
	size, err := fs.WriteFileAtomic(path, c.dc.EncodePNG)
	if err != nil {
		logging.LogError("Failed to save chart", zap.String("chart", ch.Name), zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("failed to save %s: %w", ch.File, err)
	}

	logging.LogSuccess("Created: "+ch.File,
		zap.String("path", path),
		zap.Int64("fileSize", size),
		zap.Int("width", c.dc.Width()),
		zap.Int("height", c.dc.Height()),
		logging.Since(start))

	return path, nil
}

// All renders the whole catalog in order and stops at the first failure.
// Files written before the failure are kept.
func (g *Generator) All(ctx context.Context) ([]string, error) {
	return g.renderCharts(ctx, Catalog())
}

// Only renders the named charts in catalog order.
func (g *Generator) Only(ctx context.Context, names []string) ([]string, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		ch, ok := Lookup(strings.TrimSpace(n))
		if !ok {
			return nil, fmt.Errorf("unknown chart %q (known: %s)", n, strings.Join(Names(), ", "))
		}
		want[ch.Name] = true
	}

	var selected []Chart
	for _, ch := range Catalog() {
		if want[ch.Name] {
			selected = append(selected, ch)
		}
	}
	return g.renderCharts(ctx, selected)
}

func (g *Generator) renderCharts(ctx context.Context, list []Chart) ([]string, error) {
	logging.LogInfo("Generating methodology charts...", zap.String("dir", g.outDir), zap.Int("count", len(list)))

	paths := make([]string, 0, len(list))
	for _, ch := range list {
		path, err := g.Render(ctx, ch)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// The six routines below render a single chart each.

func (g *Generator) WeightPie(ctx context.Context) (string, error) {
	return g.renderNamed(ctx, WeightPieName)
}

func (g *Generator) AuditCoverage(ctx context.Context) (string, error) {
	return g.renderNamed(ctx, AuditCoverageName)
}

func (g *Generator) LiquidityExit(ctx context.Context) (string, error) {
	return g.renderNamed(ctx, LiquidityExitName)
}

func (g *Generator) GovernanceStructure(ctx context.Context) (string, error) {
	return g.renderNamed(ctx, GovernanceStructureName)
}

func (g *Generator) AaveRadar(ctx context.Context) (string, error) {
	return g.renderNamed(ctx, AaveRadarName)
}

func (g *Generator) ScoreComponents(ctx context.Context) (string, error) {
	return g.renderNamed(ctx, ScoreComponentsName)
}

func (g *Generator) renderNamed(ctx context.Context, name string) (string, error) {
	ch, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown chart %q", name)
	}
	return g.Render(ctx, ch)
}
