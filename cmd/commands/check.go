package commands

// Command to check the embedded methodology tables
// Verifies weights sum to 100 and each rubric tops out at its documented maximum
// Prints the totals and the worked example rating

import (
	"fmt"

	logging "methodology-charts/internal/infra/log"
	"methodology-charts/internal/methodology"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the weight and scoring tables behind the charts",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Dimension weights: %s%%\n", methodology.FormatPoints(methodology.TotalWeight(methodology.Dimensions)))
	for _, r := range methodology.Rubrics {
		fmt.Fprintf(out, "%s: highest tier %s of %s\n", r.Title, methodology.FormatPoints(r.MaxPoints()), methodology.FormatPoints(r.Max))
	}

	total, err := methodology.TotalScore(methodology.Dimensions, methodology.Aave.Scores)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s example: %.1f/100 (%s)\n", methodology.Aave.Name, total, methodology.RatingFor(total))

	if err := methodology.Validate(); err != nil {
		logging.LogError("Methodology tables are inconsistent", zap.Error(err))
		return fmt.Errorf("methodology tables are inconsistent: %w", err)
	}

	logging.LogSuccess("Methodology tables are consistent")
	return nil
}
