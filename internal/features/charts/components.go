package charts

import (
	"fmt"
	"math"

	"methodology-charts/internal/methodology"
)

const (
	componentsBarWidth = 0.7
	componentsYLimit   = 38.0
	formulaColor       = "#10b981"
)

// drawComponents draws one vertical bar per dimension labelled with its
// weight, and the weighted-sum formula in a rounded box under the axes.
func drawComponents(c *canvas, dims []methodology.Dimension) error {
	if len(dims) == 0 {
		return fmt.Errorf("no dimensions to draw")
	}

	n := float64(len(dims))
	a := axes{
		x0:   c.pt(72),
		y0:   c.pt(58),
		x1:   c.w - c.pt(20),
		y1:   c.h - c.pt(112),
		xmin: -0.5 - componentsBarWidth/7,
		xmax: n - 0.5 + componentsBarWidth/7,
		ymin: 0,
		ymax: componentsYLimit,
	}

	c.title("Five Scoring Dimensions (S1-S5) and Their Weights", 14, a.y0-c.pt(15))
	c.fillAxes(a)

	for i, d := range dims {
		x := float64(i)
		left := a.px(x - componentsBarWidth/2)
		right := a.px(x + componentsBarWidth/2)
		top := a.py(d.Weight)

		c.dc.DrawRectangle(left, top, right-left, a.y1-top)
		c.color(d.Color)
		c.dc.FillPreserve()
		c.color(c.theme.Text)
		c.dc.SetLineWidth(c.pt(1))
		c.dc.Stroke()

		c.font(14, true)
		c.text(fmt.Sprintf("%s%%", methodology.FormatPoints(d.Weight)), a.px(x), a.py(d.Weight+1), 0.5, 1)
	}

	c.strokeAxes(a)

	positions := make([]float64, len(dims))
	for i := range dims {
		positions[i] = float64(i)
	}
	c.xTicks(a, positions, 10, func(v float64) string {
		d := dims[int(v)]
		return d.Code + "\n" + d.Short
	})
	c.yTicks(a, ticks(0, componentsYLimit), 11, methodology.FormatPoints)

	c.font(12, true)
	c.color(c.theme.Text)
	c.dc.Push()
	c.dc.RotateAbout(-math.Pi/2, c.pt(18), (a.y0+a.y1)/2)
	c.text("Weight (%)", c.pt(18), (a.y0+a.y1)/2, 0.5, 0.5)
	c.dc.Pop()

	c.formulaBox(methodology.Formula(dims), (a.x0+a.x1)/2, a.y1+c.pt(60))

	return nil
}

// formulaBox draws s in a rounded, tinted box whose top center is (x, y).
func (c *canvas) formulaBox(s string, x, y float64) {
	c.font(11, true)
	w, h := c.textSize(s)
	pad := c.pt(4)

	c.dc.DrawRoundedRectangle(x-w/2-pad, y, w+2*pad, h+2*pad, pad)
	c.colorAlpha(c.theme.Grid, 0.8)
	c.dc.FillPreserve()
	c.colorAlpha(formulaColor, 0.8)
	c.dc.SetLineWidth(c.pt(1))
	c.dc.Stroke()

	c.color(formulaColor)
	c.text(s, x, y+pad, 0.5, 0)
}
