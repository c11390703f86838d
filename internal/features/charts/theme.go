package charts

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Theme is the dark palette shared by every methodology chart.
type Theme struct {
	FigureBG string
	AxesBG   string
	AxesEdge string
	Grid     string
	Text     string
	Muted    string
	DPI      float64 // pixels per figure inch
}

func DefaultTheme() Theme {
	return Theme{
		FigureBG: "#1a1a2e",
		AxesBG:   "#16213e",
		AxesEdge: "#e94560",
		Grid:     "#0f3460",
		Text:     "#ffffff",
		Muted:    "#888888",
		DPI:      150,
	}
}

// parseHex accepts #rgb and #rrggbb.
func parseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// mustHex is for the literal palette entries; a typo there is a programming error.
func mustHex(s string) color.RGBA {
	c, err := parseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// fontSet caches faces per pixel size. Not safe for concurrent use.
type fontSet struct {
	regular *truetype.Font
	bold    *truetype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

// loadFonts parses the embedded Go fonts. A non-empty regularPath replaces
// the regular face with a TTF from disk.
func loadFonts(regularPath string) (*fontSet, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded bold font: %w", err)
	}

	if regularPath != "" {
		data, err := os.ReadFile(regularPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font %s: %w", regularPath, err)
		}
		regular, err = truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", regularPath, err)
		}
	}

	return &fontSet{regular: regular, bold: bold, faces: make(map[faceKey]font.Face)}, nil
}

func (f *fontSet) face(sizePx float64, bold bool) font.Face {
	key := faceKey{size: sizePx, bold: bold}
	if face, ok := f.faces[key]; ok {
		return face
	}
	ttf := f.regular
	if bold {
		ttf = f.bold
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: sizePx, DPI: 72, Hinting: font.HintingFull})
	f.faces[key] = face
	return face
}
