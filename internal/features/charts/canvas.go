package charts

import (
	"math"
	"strings"

	"github.com/fogleman/gg"
)

const lineSpacing = 1.2

// canvas wraps a gg context sized in figure inches, with point-based fonts.
type canvas struct {
	dc    *gg.Context
	theme Theme
	fonts *fontSet
	w, h  float64
}

func newCanvas(theme Theme, fonts *fontSet, widthIn, heightIn float64) *canvas {
	w := math.Round(widthIn * theme.DPI)
	h := math.Round(heightIn * theme.DPI)
	dc := gg.NewContext(int(w), int(h))

	dc.SetColor(mustHex(theme.FigureBG))
	dc.Clear()

	return &canvas{dc: dc, theme: theme, fonts: fonts, w: w, h: h}
}

// pt converts typographic points to pixels at the theme DPI.
func (c *canvas) pt(v float64) float64 {
	return v * c.theme.DPI / 72
}

func (c *canvas) font(sizePt float64, bold bool) {
	c.dc.SetFontFace(c.fonts.face(c.pt(sizePt), bold))
}

func (c *canvas) color(hex string) {
	c.dc.SetColor(mustHex(hex))
}

func (c *canvas) colorAlpha(hex string, alpha float64) {
	rgb := mustHex(hex)
	c.dc.SetRGBA255(int(rgb.R), int(rgb.G), int(rgb.B), int(math.Round(alpha*255)))
}

// textSize measures a possibly multi-line string in the current face.
func (c *canvas) textSize(s string) (w, h float64) {
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		lw, _ := c.dc.MeasureString(line)
		w = math.Max(w, lw)
	}
	fh := c.dc.FontHeight()
	h = fh + fh*lineSpacing*float64(len(lines)-1)
	return w, h
}

// text draws s anchored at (x, y). ax and ay pick the anchor inside the text
// block (0 left/top, 1 right/bottom); each line is aligned by ax as well.
func (c *canvas) text(s string, x, y, ax, ay float64) {
	lines := strings.Split(s, "\n")
	_, blockH := c.textSize(s)
	top := y - ay*blockH
	fh := c.dc.FontHeight()
	for i, line := range lines {
		c.dc.DrawStringAnchored(line, x, top+float64(i)*fh*lineSpacing, ax, 1)
	}
}

// title draws a bold centered heading whose bottom edge sits at y.
func (c *canvas) title(s string, sizePt, y float64) {
	c.font(sizePt, true)
	c.color(c.theme.Text)
	c.text(s, c.w/2, y, 0.5, 1)
}

// axes is a pixel rectangle mapping data ranges onto the canvas.
type axes struct {
	x0, y0, x1, y1 float64 // top-left and bottom-right
	xmin, xmax     float64
	ymin, ymax     float64
}

func (a axes) width() float64  { return a.x1 - a.x0 }
func (a axes) height() float64 { return a.y1 - a.y0 }

func (a axes) px(x float64) float64 {
	return a.x0 + (x-a.xmin)/(a.xmax-a.xmin)*a.width()
}

func (a axes) py(y float64) float64 {
	return a.y1 - (y-a.ymin)/(a.ymax-a.ymin)*a.height()
}

func (c *canvas) fillAxes(a axes) {
	c.color(c.theme.AxesBG)
	c.dc.DrawRectangle(a.x0, a.y0, a.width(), a.height())
	c.dc.Fill()
}

func (c *canvas) strokeAxes(a axes) {
	c.color(c.theme.AxesEdge)
	c.dc.SetLineWidth(c.pt(0.8))
	c.dc.DrawRectangle(a.x0, a.y0, a.width(), a.height())
	c.dc.Stroke()
}

// tickStep picks a 1/2/5 step giving at most eight intervals over span.
func tickStep(span float64) float64 {
	if span <= 0 {
		return 1
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(span)))
	for _, m := range []float64{0.1, 0.2, 0.5, 1, 2, 5, 10} {
		if step := m * magnitude; span/step <= 8 {
			return step
		}
	}
	return 10 * magnitude
}

// ticks lists multiples of tickStep within [lo, hi].
func ticks(lo, hi float64) []float64 {
	step := tickStep(hi - lo)
	var out []float64
	for v := math.Ceil(lo/step) * step; v <= hi+step*1e-9; v += step {
		out = append(out, math.Round(v/step)*step)
	}
	return out
}

// xTicks draws tick marks and labels under the axes.
func (c *canvas) xTicks(a axes, values []float64, sizePt float64, label func(float64) string) {
	c.font(sizePt, false)
	c.color(c.theme.Text)
	c.dc.SetLineWidth(c.pt(0.8))
	tick := c.pt(3.5)
	for _, v := range values {
		x := a.px(v)
		c.dc.DrawLine(x, a.y1, x, a.y1+tick)
		c.dc.Stroke()
		c.text(label(v), x, a.y1+tick+c.pt(3.5), 0.5, 0)
	}
}

// yTicks draws tick marks and labels left of the axes.
func (c *canvas) yTicks(a axes, values []float64, sizePt float64, label func(float64) string) {
	c.font(sizePt, false)
	c.color(c.theme.Text)
	c.dc.SetLineWidth(c.pt(0.8))
	tick := c.pt(3.5)
	for _, v := range values {
		y := a.py(v)
		c.dc.DrawLine(a.x0-tick, y, a.x0, y)
		c.dc.Stroke()
		c.text(label(v), a.x0-tick-c.pt(3.5), y, 1, 0.5)
	}
}

// dashedLine draws a dashed segment and resets the dash pattern.
func (c *canvas) dashedLine(x0, y0, x1, y1, widthPt float64) {
	c.dc.SetLineWidth(c.pt(widthPt))
	c.dc.SetDash(c.pt(3.7*widthPt), c.pt(1.6*widthPt))
	c.dc.DrawLine(x0, y0, x1, y1)
	c.dc.Stroke()
	c.dc.SetDash()
}

// legendEntry is one dashed-line sample in a legend box.
type legendEntry struct {
	label string
	color string
}

// legend draws a boxed legend in the lower right corner of a.
func (c *canvas) legend(a axes, entries []legendEntry) {
	c.font(11, false)
	pad := c.pt(5)
	sample := c.pt(20)
	gap := c.pt(8)

	var textW float64
	for _, e := range entries {
		w, _ := c.textSize(e.label)
		textW = math.Max(textW, w)
	}
	rowH := c.dc.FontHeight() * 1.5
	boxW := pad + sample + gap + textW + pad
	boxH := pad*2 + rowH*float64(len(entries))
	bx := a.x1 - pad - boxW
	by := a.y1 - pad - boxH

	c.colorAlpha(c.theme.AxesBG, 0.8)
	c.dc.DrawRoundedRectangle(bx, by, boxW, boxH, c.pt(2))
	c.dc.FillPreserve()
	c.color(c.theme.Text)
	c.dc.SetLineWidth(c.pt(0.8))
	c.dc.Stroke()

	for i, e := range entries {
		cy := by + pad + rowH*(float64(i)+0.5)
		c.color(e.color)
		c.dashedLine(bx+pad, cy, bx+pad+sample, cy, 2)
		c.color(c.theme.Text)
		c.text(e.label, bx+pad+sample+gap, cy, 0, 0.5)
	}
}
