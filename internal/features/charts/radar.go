package charts

import (
	"fmt"
	"math"

	"methodology-charts/internal/methodology"
)

const (
	radarMax        = 100.0
	radarRingStep   = 20.0
	radarLabelAngle = 22.5 // degrees, where the ring values are printed
)

// drawRadar plots one protocol's dimension scores on a 0..100 polar grid.
// The first dimension points east and the rest follow counter-clockwise.
func drawRadar(c *canvas, p methodology.ProtocolExample, dims []methodology.Dimension) error {
	if len(p.Scores) != len(dims) || len(dims) < 3 {
		return fmt.Errorf("%s: need one score per dimension and at least 3 dimensions", p.Name)
	}
	total, err := methodology.TotalScore(dims, p.Scores)
	if err != nil {
		return err
	}

	c.title(fmt.Sprintf("%s Protocol Score\nTotal: %.1f/100", p.Name, total), 16, c.pt(84))

	cx := c.w / 2
	cy := c.h/2 + c.pt(30)
	radius := c.w * 0.32

	angle := func(i int) float64 {
		return -float64(i) * 2 * math.Pi / float64(len(dims))
	}
	point := func(i int, value float64) (float64, float64) {
		r := value / radarMax * radius
		return cx + math.Cos(angle(i))*r, cy + math.Sin(angle(i))*r
	}

	c.color(c.theme.AxesBG)
	c.dc.DrawCircle(cx, cy, radius)
	c.dc.Fill()

	c.color(c.theme.Grid)
	c.dc.SetLineWidth(c.pt(0.5))
	for v := radarRingStep; v <= radarMax; v += radarRingStep {
		c.dc.DrawCircle(cx, cy, v/radarMax*radius)
		c.dc.Stroke()
	}
	for i := range dims {
		x, y := point(i, radarMax)
		c.dc.DrawLine(cx, cy, x, y)
		c.dc.Stroke()
	}
	c.dc.SetLineWidth(c.pt(1))
	c.dc.DrawCircle(cx, cy, radius)
	c.dc.Stroke()

	c.font(9, false)
	c.color(c.theme.Muted)
	labelAngle := -radarLabelAngle * math.Pi / 180
	for v := radarRingStep; v <= radarMax; v += radarRingStep {
		r := v / radarMax * radius
		c.text(fmt.Sprintf("%.0f", v), cx+math.Cos(labelAngle)*r, cy+math.Sin(labelAngle)*r, 0.5, 0.5)
	}

	c.dc.NewSubPath()
	for i, s := range p.Scores {
		x, y := point(i, s)
		if i == 0 {
			c.dc.MoveTo(x, y)
		} else {
			c.dc.LineTo(x, y)
		}
	}
	c.dc.ClosePath()
	c.colorAlpha(p.Color, 0.25)
	c.dc.FillPreserve()
	c.color(p.Color)
	c.dc.SetLineWidth(c.pt(2))
	c.dc.Stroke()

	for i, s := range p.Scores {
		x, y := point(i, s)
		c.dc.DrawCircle(x, y, c.pt(4))
		c.dc.Fill()
	}

	c.font(12, true)
	for i, s := range p.Scores {
		x, y := point(i, s+8)
		c.text(methodology.FormatPoints(s), x, y, 0.5, 0.5)
	}

	c.font(10, false)
	c.color(c.theme.Text)
	for i, d := range dims {
		cos, sin := math.Cos(angle(i)), math.Sin(angle(i))
		x := cx + cos*radius*1.08
		y := cy + sin*radius*1.08
		c.text(d.Short, x, y, anchorFor(cos), anchorFor(sin))
	}

	return nil
}

// anchorFor places labels outside the circle: left/top anchored on the
// positive side, right/bottom on the negative side, centered near zero.
func anchorFor(v float64) float64 {
	switch {
	case v > 0.1:
		return 0
	case v < -0.1:
		return 1
	default:
		return 0.5
	}
}
