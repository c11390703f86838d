package charts

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicks(t *testing.T) {
	assert.Equal(t, []float64{0, 10, 20, 30, 40, 50, 60, 70}, ticks(0, 70))
	assert.Equal(t, []float64{0, 10, 20, 30, 40}, ticks(0, 48))
	assert.Equal(t, []float64{0, 5, 10, 15, 20, 25, 30, 35}, ticks(0, 36))
	assert.Equal(t, []float64{0, 5, 10, 15, 20, 25, 30, 35}, ticks(0, 38))
	assert.Equal(t, []float64{0, 20, 40, 60, 80, 100}, ticks(0, 100))
}

func TestParseHex(t *testing.T) {
	c, err := parseHex("#10b981")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}, c)

	c, err = parseHex("#888")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}, c)

	_, err = parseHex("#12345")
	assert.Error(t, err)
	_, err = parseHex("#zzzzzz")
	assert.Error(t, err)
}

func TestAxesMapping(t *testing.T) {
	a := axes{x0: 100, y0: 50, x1: 300, y1: 250, xmin: 0, xmax: 100, ymin: 0, ymax: 10}
	assert.Equal(t, 100.0, a.px(0))
	assert.Equal(t, 200.0, a.px(50))
	assert.Equal(t, 250.0, a.py(0))
	assert.Equal(t, 50.0, a.py(10))
}

func TestTextSizeGrowsWithLines(t *testing.T) {
	fonts, err := loadFonts("")
	require.NoError(t, err)
	c := newCanvas(DefaultTheme(), fonts, 2, 1)
	c.font(10, false)

	w1, h1 := c.textSize("Governance")
	w2, h2 := c.textSize("Governance\n&")
	assert.Equal(t, w1, w2)
	assert.Greater(t, h2, h1)
	assert.Equal(t, 300, c.dc.Width())
}

func TestAnchorFor(t *testing.T) {
	assert.Equal(t, 0.0, anchorFor(1))
	assert.Equal(t, 1.0, anchorFor(-0.9))
	assert.Equal(t, 0.5, anchorFor(0))
}

func TestPieLabel(t *testing.T) {
	assert.Equal(t, "Smart Contract &\nTechnical Risk", pieLabel("Smart Contract & Technical Risk"))
	assert.Equal(t, "Plain", pieLabel("Plain"))
}
