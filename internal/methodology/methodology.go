// Package methodology holds the fixed tables of the DeFi protocol rating
// methodology: the five scoring dimensions and their weights, the point
// rubrics for audits, liquidity and governance, and the Aave worked example.
package methodology

import (
	"errors"
	"fmt"
	"math"
)

// Palette is the dimension color order used across all charts.
var Palette = []string{"#10b981", "#3b82f6", "#8b5cf6", "#f59e0b", "#ef4444"}

// PaletteLight holds the lighter variant of Palette.
var PaletteLight = []string{"#34d399", "#60a5fa", "#a78bfa", "#fbbf24", "#f87171"}

// Dimension is one of the five scoring dimensions S1..S5.
type Dimension struct {
	Code   string
	Name   string
	Short  string // two-line label for axes
	Weight float64
	Color  string
}

// Dimensions lists S1..S5 in weight order.
var Dimensions = []Dimension{
	{Code: "S1", Name: "Smart Contract & Technical Risk", Short: "Smart Contract\n& Technical", Weight: 30, Color: Palette[0]},
	{Code: "S2", Name: "Economic Design & Market Risk", Short: "Economic Design\n& Market", Weight: 25, Color: Palette[1]},
	{Code: "S3", Name: "Governance & Centralization Risk", Short: "Governance &\nCentralization", Weight: 20, Color: Palette[2]},
	{Code: "S4", Name: "Sustainability & Competitive Position", Short: "Sustainability &\nCompetitive", Weight: 15, Color: Palette[3]},
	{Code: "S5", Name: "Reputation & Social Trust", Short: "Reputation &\nSocial Trust", Weight: 10, Color: Palette[4]},
}

// TotalWeight sums the dimension weights in percent.
func TotalWeight(dims []Dimension) float64 {
	var total float64
	for _, d := range dims {
		total += d.Weight
	}
	return total
}

// Tier is one row of a point rubric.
type Tier struct {
	Label  string
	Points float64
	Color  string
}

// Rubric is a scored criterion drawn as a horizontal bar chart.
type Rubric struct {
	Title       string
	Max         float64 // documented maximum
	AxisLimit   float64
	CapLine     bool    // draw a dashed "Max Cap" line at Max
	LabelFormat string  // fmt verb for the value label, e.g. "+%s pts"
	LabelOffset float64 // gap between bar end and label, in score points
	LabelSize   float64 // label font size
	Tiers       []Tier
}

// MaxPoints returns the highest tier score.
func (r Rubric) MaxPoints() float64 {
	var maxPoints float64
	for i, t := range r.Tiers {
		if i == 0 || t.Points > maxPoints {
			maxPoints = t.Points
		}
	}
	return maxPoints
}

// ValueLabel formats points the way the bar annotations show them:
// integers without a fraction, halves with one digit.
func (r Rubric) ValueLabel(points float64) string {
	return fmt.Sprintf(r.LabelFormat, FormatPoints(points))
}

// FormatPoints renders 40 as "40" and 32.5 as "32.5".
func FormatPoints(points float64) string {
	if points == math.Trunc(points) {
		return fmt.Sprintf("%.0f", points)
	}
	return fmt.Sprintf("%g", points)
}

var AuditCoverage = Rubric{
	Title:       "Audit Coverage Scoring (Max 60 Points)",
	Max:         60,
	AxisLimit:   70,
	CapLine:     true,
	LabelFormat: "+%s pts",
	LabelOffset: 1,
	LabelSize:   11,
	Tiers: []Tier{
		{Label: "Tier 1 Audit\n(OpenZeppelin, Trail of Bits)", Points: 60, Color: "#10b981"},
		{Label: "Tier 2 Audit\n+ Others Combined", Points: 40, Color: "#3b82f6"},
		{Label: "Other/Independent\nAuditor", Points: 20, Color: "#8b5cf6"},
		{Label: "Multiple Audits\nBonus (per audit)", Points: 5, Color: "#f59e0b"},
	},
}

var LiquidityExit = Rubric{
	Title:       "Liquidity & Exit Accessibility Scoring (Max 40 Points)",
	Max:         40,
	AxisLimit:   48,
	LabelFormat: "%s pts",
	LabelOffset: 1,
	LabelSize:   10,
	Tiers: []Tier{
		{Label: "Instant Access\nNo Lockup", Points: 40, Color: "#10b981"},
		{Label: "Lockup + Deep Liquid\nSecondary Market", Points: 32.5, Color: "#22c55e"},
		{Label: "Reasonable Lockup\n(< 7 days)", Points: 20, Color: "#3b82f6"},
		{Label: "Lockup + Thin/Illiquid\nMarket", Points: 15, Color: "#f59e0b"},
		{Label: "Long Lockup\n(> 14 days)", Points: 10, Color: "#ef4444"},
		{Label: "Predatory Exit Tax\n(> 5%)", Points: 0, Color: "#7f1d1d"},
	},
}

var GovernanceStructure = Rubric{
	Title:       "Governance Structure Scoring (Max 30 Points)",
	Max:         30,
	AxisLimit:   36,
	LabelFormat: "%s pts",
	LabelOffset: 0.5,
	LabelSize:   10,
	Tiers: []Tier{
		{Label: "Immutable / Governance\nMinimized", Points: 30, Color: "#10b981"},
		{Label: "Fully On-Chain DAO\n(Compound Governor)", Points: 30, Color: "#10b981"},
		{Label: "Snapshot + Veto\n(Off-chain + On-chain)", Points: 25, Color: "#3b82f6"},
		{Label: "Multisig Council\nDecisions", Points: 15, Color: "#f59e0b"},
		{Label: "Centralized Team\nControl", Points: 0, Color: "#ef4444"},
	},
}

// Rubrics lists the bar-chart rubrics in render order.
var Rubrics = []Rubric{AuditCoverage, LiquidityExit, GovernanceStructure}

// ProtocolExample is a protocol scored on every dimension, 0..100 each.
type ProtocolExample struct {
	Name   string
	Color  string
	Scores []float64 // aligned with Dimensions
}

var Aave = ProtocolExample{
	Name:   "Aave",
	Color:  "#10b981",
	Scores: []float64{95, 88, 92, 90, 85},
}

// TotalScore is the weighted sum of dimension scores, rounded to one decimal.
func TotalScore(dims []Dimension, scores []float64) (float64, error) {
	if len(scores) != len(dims) {
		return 0, fmt.Errorf("got %d scores for %d dimensions", len(scores), len(dims))
	}
	var total float64
	for i, d := range dims {
		total += scores[i] * d.Weight / 100
	}
	return math.Round(total*10) / 10, nil
}

// RatingFor maps a total score to the letter rating shown on protocol pages.
// The score is rounded to a whole number first.
func RatingFor(score float64) string {
	rounded := math.Round(score)
	switch {
	case rounded >= 95:
		return "AAA"
	case rounded >= 90:
		return "AA+"
	case rounded >= 85:
		return "AA"
	case rounded >= 80:
		return "A+"
	case rounded >= 75:
		return "A"
	case rounded >= 70:
		return "BBB"
	case rounded >= 60:
		return "BB"
	case rounded >= 50:
		return "B"
	case rounded >= 40:
		return "CCC"
	default:
		return "D"
	}
}

// Formula renders "Total Score = (S1 × 30%) + ..." for the given dimensions.
func Formula(dims []Dimension) string {
	s := "Total Score ="
	for i, d := range dims {
		if i > 0 {
			s += " +"
		}
		s += fmt.Sprintf(" (%s × %s%%)", d.Code, FormatPoints(d.Weight))
	}
	return s
}

const weightEpsilon = 1e-9

// Validate checks the embedded tables against their documented totals and
// returns every violation joined into one error.
func Validate() error {
	var errs []error

	if total := TotalWeight(Dimensions); math.Abs(total-100) > weightEpsilon {
		errs = append(errs, fmt.Errorf("dimension weights sum to %s%%, want 100%%", FormatPoints(total)))
	}
	for _, r := range Rubrics {
		if err := ValidateRubric(r); err != nil {
			errs = append(errs, err)
		}
	}
	if err := ValidateExample(Aave, Dimensions); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ValidateRubric checks a single rubric table.
func ValidateRubric(r Rubric) error {
	var errs []error
	if len(r.Tiers) == 0 {
		return fmt.Errorf("%s: no tiers", r.Title)
	}
	if got := r.MaxPoints(); got != r.Max {
		errs = append(errs, fmt.Errorf("%s: highest tier is %s pts, documented max is %s", r.Title, FormatPoints(got), FormatPoints(r.Max)))
	}
	for _, t := range r.Tiers {
		if t.Points < 0 {
			errs = append(errs, fmt.Errorf("%s: tier %q has negative points", r.Title, t.Label))
		}
		if t.Points > r.AxisLimit {
			errs = append(errs, fmt.Errorf("%s: tier %q exceeds axis limit %s", r.Title, t.Label, FormatPoints(r.AxisLimit)))
		}
	}
	return errors.Join(errs...)
}

// ValidateExample checks that an example has one 0..100 score per dimension.
func ValidateExample(p ProtocolExample, dims []Dimension) error {
	if len(p.Scores) != len(dims) {
		return fmt.Errorf("%s: %d scores for %d dimensions", p.Name, len(p.Scores), len(dims))
	}
	for i, s := range p.Scores {
		if s < 0 || s > 100 {
			return fmt.Errorf("%s: %s score %s outside 0..100", p.Name, dims[i].Code, FormatPoints(s))
		}
	}
	return nil
}
