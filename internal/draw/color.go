package draw

import "image/color"

// Color is an RGBA color with channels in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Well-known palette entries.
var (
	Black  = Color{0, 0, 0, 1}
	White  = Color{1, 1, 1, 1}
	Red    = Color{1, 0, 0, 1}
	Green  = Color{0, 0.8, 0, 1}
	Blue   = Color{0, 0.4, 1, 1}
	Yellow = Color{1, 0.9, 0, 1}
	Orange = Color{1, 0.55, 0, 1}
	Purple = Color{0.6, 0.2, 0.8, 1}
	Pink   = Color{1, 0.4, 0.7, 1}
	Cyan   = Color{0, 0.8, 0.8, 1}
)

// Palette lists the colors cycled by the color popup and toolbar swatches.
var Palette = []Color{Red, Green, Blue, Yellow, Orange, Purple, Pink, Cyan, White, Black}

// RGB builds an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Luminance returns the relative luminance used by the auto-contrast pen
// policy.
func (c Color) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// ContrastColor returns black for light colors and white for dark ones.
func (c Color) ContrastColor() Color {
	if c.Luminance() > 0.5 {
		return Black
	}
	return White
}

// NRGBA converts to an 8-bit non-premultiplied color for rasterization.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(c.A),
	}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
