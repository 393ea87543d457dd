package pattern

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

// DefaultSize is the side length used when the caller does not pick one.
const DefaultSize = 64

const (
	borderWidth     = 3
	stripeHalfWidth = 2
)

// RGB is an opaque 8-bit truecolor pixel.
type RGB struct {
	R, G, B uint8
}

// String returns the colour as "#rrggbb".
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// ParseRGB parses "#rrggbb" or "rrggbb".
func ParseRGB(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("pattern: invalid colour %q (want #rrggbb)", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("pattern: invalid colour %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Palette holds the four colours the icon is drawn with.
type Palette struct {
	Background RGB
	Border     RGB
	AccentA    RGB // main diagonal
	AccentB    RGB // anti-diagonal
}

// DefaultPalette returns the stock icon colours.
func DefaultPalette() Palette {
	return Palette{
		Background: RGB{R: 18, G: 40, B: 60},
		Border:     RGB{R: 235, G: 240, B: 245},
		AccentA:    RGB{R: 0, G: 180, B: 160},
		AccentB:    RGB{R: 60, G: 130, B: 210},
	}
}

// Generator draws a square icon: a solid border band and two diagonal
// stripes over a flat background. The zero Palette is valid (all black).
type Generator struct {
	Size    int
	Palette Palette
}

// New returns a Generator of the given size using DefaultPalette.
func New(size int) Generator {
	return Generator{Size: size, Palette: DefaultPalette()}
}

// Pixel returns the colour at (x, y). The result depends only on x, y,
// Size and Palette. Size must be positive.
func (g Generator) Pixel(x, y int) RGB {
	n := g.Size
	switch {
	case x < borderWidth || x >= n-borderWidth || y < borderWidth || y >= n-borderWidth:
		return g.Palette.Border
	case abs(x-y) < stripeHalfWidth:
		return g.Palette.AccentA
	case abs((n-1-x)-y) < stripeHalfWidth:
		return g.Palette.AccentB
	default:
		return g.Palette.Background
	}
}

// Bounds implements image.Image.
func (g Generator) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Size, g.Size)
}

// ColorModel implements image.Image.
func (g Generator) ColorModel() color.Model {
	return color.RGBAModel
}

// At implements image.Image. Points outside Bounds are transparent.
func (g Generator) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(g.Bounds()) {
		return color.RGBA{}
	}
	return g.Pixel(x, y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
