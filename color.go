package rdraw

import (
	"image/color"
	"strconv"
	"strings"
)

// Color is a non-premultiplied RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a color with the given alpha.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Hex parses "RGB", "RGBA", "RRGGBB" or "RRGGBBAA", with an optional '#'.
// Malformed input yields opaque black.
func Hex(hex string) Color {
	hex = strings.TrimPrefix(hex, "#")

	switch len(hex) {
	case 3, 4:
		expanded := make([]byte, 0, len(hex)*2)
		for i := range len(hex) {
			expanded = append(expanded, hex[i], hex[i])
		}
		hex = string(expanded)
	case 6, 8:
	default:
		return RGB(0, 0, 0)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB(0, 0, 0)
	}
	return Color{
		R: float32(v>>24&0xff) / 255,
		G: float32(v>>16&0xff) / 255,
		B: float32(v>>8&0xff) / 255,
		A: float32(v&0xff) / 255,
	}
}

// FromColor converts a standard library color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

// NRGBA converts the color to [color.NRGBA].
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// Premultiply returns the color with RGB scaled by alpha.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// WithAlpha returns the color with alpha multiplied by a.
func (c Color) WithAlpha(a float32) Color {
	c.A *= a
	return c
}

func to8(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA(0, 0, 0, 0)
)
