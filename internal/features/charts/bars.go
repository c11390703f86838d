package charts

import (
	"fmt"
	"math"

	"methodology-charts/internal/methodology"
)

const barHeight = 0.6 // fraction of a category slot

// drawRubric draws one horizontal bar per tier, first tier at the bottom,
// with a "+N pts" style label right of each bar.
func drawRubric(c *canvas, r methodology.Rubric) error {
	if len(r.Tiers) == 0 {
		return fmt.Errorf("%s: no tiers to draw", r.Title)
	}

	c.font(11, false)
	var labelW float64
	for _, t := range r.Tiers {
		w, _ := c.textSize(t.Label)
		labelW = math.Max(labelW, w)
	}

	n := float64(len(r.Tiers))
	a := axes{
		x0:   c.pt(14) + labelW + c.pt(7),
		y0:   c.pt(60),
		x1:   c.w - c.pt(24),
		y1:   c.h - c.pt(52),
		xmin: 0,
		xmax: r.AxisLimit,
		ymin: -0.5 - barHeight/10,
		ymax: n - 0.5 + barHeight/10,
	}

	c.title(r.Title, 14, a.y0-c.pt(15))
	c.fillAxes(a)

	for i, t := range r.Tiers {
		y := float64(i)
		top := a.py(y + barHeight/2)
		bottom := a.py(y - barHeight/2)
		right := a.px(t.Points)

		c.dc.DrawRectangle(a.px(0), top, right-a.px(0), bottom-top)
		c.color(t.Color)
		c.dc.FillPreserve()
		c.color(c.theme.Text)
		c.dc.SetLineWidth(c.pt(0.5))
		c.dc.Stroke()

		c.font(r.LabelSize, true)
		c.color(c.theme.Text)
		c.text(r.ValueLabel(t.Points), a.px(t.Points+r.LabelOffset), a.py(y), 0, 0.5)
	}

	if r.CapLine {
		c.color("#ef4444")
		c.dashedLine(a.px(r.Max), a.y0, a.px(r.Max), a.y1, 2)
	}

	c.strokeAxes(a)

	positions := make([]float64, len(r.Tiers))
	for i := range r.Tiers {
		positions[i] = float64(i)
	}
	c.yTicks(a, positions, 11, func(v float64) string { return r.Tiers[int(v)].Label })
	c.xTicks(a, ticks(0, r.AxisLimit), 11, methodology.FormatPoints)

	c.font(12, true)
	c.color(c.theme.Text)
	c.text("Points", (a.x0+a.x1)/2, c.h-c.pt(10), 0.5, 1)

	if r.CapLine {
		c.legend(a, []legendEntry{{label: "Max Cap", color: "#ef4444"}})
	}

	return nil
}
