package hwdraw

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. Colors are non-premultiplied sRGB.
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// RGBA8 creates a color from 8-bit sRGB components.
func RGBA8(r, g, b, a uint8) RGBA {
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// Common colors.
var (
	// Transparent is fully transparent black.
	Transparent = RGBA{}

	// White is opaque white.
	White = RGBA{R: 1, G: 1, B: 1, A: 1}

	// Black is opaque black.
	Black = RGBA{A: 1}
)

// Bytes returns the color as four 8-bit sRGB channels, the layout used by
// [Vertex] colors and texture uploads.
func (c RGBA) Bytes() [4]uint8 {
	return [4]uint8{
		uint8(clamp255(c.R*255 + 0.5)),
		uint8(clamp255(c.G*255 + 0.5)),
		uint8(clamp255(c.B*255 + 0.5)),
		uint8(clamp255(c.A*255 + 0.5)),
	}
}

// WithAlpha returns the color with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// clamp255 clamps v to the range [0, 255].
func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
