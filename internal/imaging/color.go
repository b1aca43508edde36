package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/makepure-mcp/internal/colorkeep"
)

// HSLColor is a color in HSL space, rounded to whole units.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes one sampled pixel.
type ColorResult struct {
	Hex   string        `json:"hex"`   // "#RRGGBB", alpha excluded
	RGB   colorkeep.RGB `json:"rgb"`   // 8-bit components
	Alpha uint8         `json:"alpha"` // 0 transparent, 255 opaque
	HSL   HSLColor      `json:"hsl"`
}

// SampleColor reads the pixel at (x,y). Values are non-premultiplied, so a
// translucent pixel reports its own color rather than a darkened one.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	rgb := colorkeep.RGB{R: n.R, G: n.G, B: n.B}
	return &ColorResult{
		Hex:   HexString(rgb),
		RGB:   rgb,
		Alpha: n.A,
		HSL:   hslOf(rgb),
	}, nil
}

// HexString formats c as "#RRGGBB".
func HexString(c colorkeep.RGB) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHexColor parses "#RRGGBB" (or the short "#RGB" form) into an RGB
// reference color.
func ParseHexColor(s string) (colorkeep.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorkeep.RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return colorkeep.RGB{R: r, G: g, B: b}, nil
}

func hslOf(c colorkeep.RGB) HSLColor {
	h, s, l := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}
