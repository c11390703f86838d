package commands

// Root command for Cobra CLI
// Loads configuration and sets up logging before any subcommand runs
// Without a subcommand it renders all charts (same as "generate")

import (
	"fmt"

	"methodology-charts/internal/infra/config"
	logging "methodology-charts/internal/infra/log"

	"github.com/spf13/cobra"
)

// cfg is filled by the root PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "methodology-charts",
	Short: "Render the DeFi protocol rating methodology charts",
	Long: `methodology-charts renders the six static images used by the
"Methodology: rating DeFi protocols" article: the S1-S5 weight pie, the audit,
liquidity and governance scoring bars, the Aave radar example and the score
components chart. Images are written as PNG files into one output directory.`,
	Version:           "1.0.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { logging.Sync() },
	RunE:              runGenerate,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("out", config.DefaultOutputDir, "Output directory for PNG files (env: CHARTS_OUTPUT_DIR)")
	pf.Float64("dpi", 150, "Pixels per figure inch (env: CHARTS_DPI)")
	pf.String("font", "", "TTF file replacing the embedded regular font (env: CHARTS_FONT_PATH)")
	pf.String("log-dir", "logs", "Directory for app.log (env: LOG_DIR)")
	pf.BoolP("verbose", "v", false, "Print warnings and debug lines on the console")

	addOnlyFlag(rootCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(publishCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Setup(loaded.Log.Dir, loaded.Log.Verbose); err != nil {
		return err
	}
	cfg = loaded
	return nil
}
