package commands

// Command to render the methodology charts
// Renders all six charts in order, or a subset selected with --only
// Any rendering failure stops the run; files written before it are kept

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"methodology-charts/internal/features/charts"
	logging "methodology-charts/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the methodology charts into the output directory",
	Long: `Render the six methodology charts as PNG files. The output directory is created
if missing and existing files in it are only replaced, never removed.

Chart names for --only: ` + strings.Join(charts.Names(), ", "),
	RunE: runGenerate,
}

func init() {
	addOnlyFlag(generateCmd)
}

func addOnlyFlag(cmd *cobra.Command) {
	cmd.Flags().StringSlice("only", nil, "Render only these charts (names or file names)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	only, err := cmd.Flags().GetStringSlice("only")
	if err != nil {
		return err
	}

	paths, err := renderCharts(ctx, only)
	if err != nil {
		return err
	}

	logging.LogSuccess(fmt.Sprintf("All %d charts generated successfully", len(paths)), zap.String("dir", cfg.Output.Dir))
	return nil
}

// renderCharts builds a generator from cfg and renders all or the named charts.
func renderCharts(ctx context.Context, only []string) ([]string, error) {
	gen, err := newGenerator()
	if err != nil {
		return nil, err
	}

	logging.LogInfo("Generating methodology charts...", zap.String("dir", gen.OutDir()), zap.Float64("dpi", cfg.Output.DPI))
	if len(only) > 0 {
		return gen.Only(ctx, only)
	}
	return gen.All(ctx)
}

func newGenerator() (*charts.Generator, error) {
	opts := []charts.Option{charts.WithDPI(cfg.Output.DPI)}
	if cfg.Chart.FontPath != "" {
		opts = append(opts, charts.WithFontPath(cfg.Chart.FontPath))
	}
	gen, err := charts.NewGenerator(cfg.Output.Dir, opts...)
	if err != nil {
		logging.LogError("Failed to create chart generator", zap.Error(err))
		return nil, fmt.Errorf("failed to create chart generator: %w", err)
	}
	return gen, nil
}

// existingCharts returns catalog paths in the output dir, failing on the first missing file.
func existingCharts(gen *charts.Generator) ([]string, error) {
	var paths []string
	for _, ch := range charts.Catalog() {
		path := gen.Path(ch)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("chart %s not found, run generate first: %w", ch.File, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
