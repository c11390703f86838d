package charts

import (
	"fmt"
	"math"

	"methodology-charts/internal/methodology"
)

const (
	pieExplode       = 0.02 // wedge offset as a fraction of the radius
	piePctDistance   = 0.6
	pieLabelDistance = 1.15
)

// drawWeightPie draws the S1..S5 weight distribution, starting at twelve
// o'clock and running counter-clockwise.
func drawWeightPie(c *canvas) error {
	dims := methodology.Dimensions
	total := methodology.TotalWeight(dims)
	if total <= 0 {
		return fmt.Errorf("weights sum to %v", total)
	}

	c.title("DeFi Protocol Rating\nWeight Distribution", 16, c.pt(62))

	cx := c.w / 2
	cy := c.h*0.55 + c.pt(8)
	radius := math.Min(c.w, c.h) * 0.30

	// Screen y grows downwards, so counter-clockwise means decreasing angles.
	start := -math.Pi / 2
	type wedge struct {
		a0, a1 float64
		dim    methodology.Dimension
	}
	wedges := make([]wedge, 0, len(dims))
	for _, d := range dims {
		sweep := d.Weight / total * 2 * math.Pi
		wedges = append(wedges, wedge{a0: start, a1: start - sweep, dim: d})
		start -= sweep
	}

	for _, w := range wedges {
		mid := (w.a0 + w.a1) / 2
		ox := cx + math.Cos(mid)*radius*pieExplode
		oy := cy + math.Sin(mid)*radius*pieExplode

		c.dc.NewSubPath()
		c.dc.MoveTo(ox, oy)
		c.dc.DrawArc(ox, oy, radius, w.a0, w.a1)
		c.dc.ClosePath()
		c.color(w.dim.Color)
		c.dc.FillPreserve()
		c.color(c.theme.FigureBG)
		c.dc.SetLineWidth(c.pt(2))
		c.dc.Stroke()
	}

	for _, w := range wedges {
		mid := (w.a0 + w.a1) / 2
		cos, sin := math.Cos(mid), math.Sin(mid)

		c.font(12, true)
		c.color(c.theme.Text)
		pct := w.dim.Weight / total * 100
		c.text(fmt.Sprintf("%.0f%%", pct), cx+cos*radius*piePctDistance, cy+sin*radius*piePctDistance, 0.5, 0.5)

		c.font(10, false)
		label := fmt.Sprintf("%s\n(%s%%)", pieLabel(w.dim.Name), methodology.FormatPoints(w.dim.Weight))
		ax := 0.0
		if cos < 0 {
			ax = 1
		}
		c.text(label, cx+cos*radius*pieLabelDistance, cy+sin*radius*pieLabelDistance, ax, 0.5)
	}

	return nil
}

// pieLabel breaks "Smart Contract & Technical Risk" after the ampersand.
func pieLabel(name string) string {
	for i := 0; i+1 < len(name); i++ {
		if name[i] == '&' && name[i+1] == ' ' {
			return name[:i+1] + "\n" + name[i+2:]
		}
	}
	return name
}
