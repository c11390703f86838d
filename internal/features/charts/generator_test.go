package charts

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDPI = 40

func newTestGenerator(t *testing.T, dir string) *Generator {
	t.Helper()
	g, err := NewGenerator(dir, WithDPI(testDPI))
	require.NoError(t, err)
	return g
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestAllWritesSixCharts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "images", "articles")
	g := newTestGenerator(t, dir)

	paths, err := g.All(context.Background())
	require.NoError(t, err)

	want := []string{
		"weight-distribution-pie.png",
		"audit-coverage-scoring.png",
		"liquidity-exit-scoring.png",
		"governance-structure-scoring.png",
		"aave-radar-example.png",
		"score-components.png",
	}
	require.Len(t, paths, len(want))
	for i, name := range want {
		assert.Equal(t, filepath.Join(dir, name), paths[i])
	}

	sorted := append([]string(nil), want...)
	sort.Strings(sorted)
	assert.Equal(t, sorted, listDir(t, dir))
}

func TestChartSizesFollowFigureInches(t *testing.T) {
	g := newTestGenerator(t, t.TempDir())

	for _, ch := range Catalog() {
		t.Run(ch.Name, func(t *testing.T) {
			path, err := g.Render(context.Background(), ch)
			require.NoError(t, err)

			img := decodePNG(t, path)
			assert.Equal(t, int(ch.Width*testDPI), img.Bounds().Dx())
			assert.Equal(t, int(ch.Height*testDPI), img.Bounds().Dy())

			r, gg, b, _ := img.At(0, 0).RGBA()
			assert.Equal(t, [3]uint32{0x1a, 0x1a, 0x2e}, [3]uint32{r >> 8, gg >> 8, b >> 8}, "figure background")
		})
	}
}

func TestEachRoutineWritesOneFile(t *testing.T) {
	routines := map[string]func(*Generator, context.Context) (string, error){
		"weight-distribution-pie.png":      (*Generator).WeightPie,
		"audit-coverage-scoring.png":       (*Generator).AuditCoverage,
		"liquidity-exit-scoring.png":       (*Generator).LiquidityExit,
		"governance-structure-scoring.png": (*Generator).GovernanceStructure,
		"aave-radar-example.png":           (*Generator).AaveRadar,
		"score-components.png":             (*Generator).ScoreComponents,
	}

	for file, render := range routines {
		t.Run(file, func(t *testing.T) {
			dir := t.TempDir()
			g := newTestGenerator(t, dir)

			path, err := render(g, context.Background())
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, file), path)
			assert.Equal(t, []string{file}, listDir(t, dir))
		})
	}
}

func TestRerunOverwritesWithoutClearingDir(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "hero.jpg")
	require.NoError(t, os.WriteFile(keep, []byte("not ours"), 0644))

	g := newTestGenerator(t, dir)
	_, err := g.All(context.Background())
	require.NoError(t, err)
	first := listDir(t, dir)

	_, err = g.All(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, listDir(t, dir))
	assert.Len(t, first, 7)
	assert.FileExists(t, keep)
}

func TestRenderingIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	g := newTestGenerator(t, dir)

	path, err := g.ScoreComponents(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = g.ScoreComponents(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOnly(t *testing.T) {
	dir := t.TempDir()
	g := newTestGenerator(t, dir)

	paths, err := g.Only(context.Background(), []string{"score-components.png", " weight-pie"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "weight-distribution-pie.png"),
		filepath.Join(dir, "score-components.png"),
	}, paths, "catalog order is kept")

	_, err = g.Only(context.Background(), []string{"histogram"})
	assert.ErrorContains(t, err, `unknown chart "histogram"`)
}

func TestRenderHonorsCancelledContext(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	g := newTestGenerator(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	paths, err := g.All(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, paths)
	assert.NoDirExists(t, dir)
}

func TestNewGeneratorErrors(t *testing.T) {
	_, err := NewGenerator("")
	assert.Error(t, err)

	_, err = NewGenerator(t.TempDir(), WithDPI(0))
	assert.Error(t, err)

	_, err = NewGenerator(t.TempDir(), WithFontPath(filepath.Join(t.TempDir(), "missing.ttf")))
	assert.ErrorContains(t, err, "failed to read font")
}

func TestCatalogNames(t *testing.T) {
	assert.Equal(t, []string{
		WeightPieName, AuditCoverageName, LiquidityExitName,
		GovernanceStructureName, AaveRadarName, ScoreComponentsName,
	}, Names())

	ch, ok := Lookup("aave-radar-example.png")
	require.True(t, ok)
	assert.Equal(t, AaveRadarName, ch.Name)
}
