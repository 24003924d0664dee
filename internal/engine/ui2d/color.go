package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Overlay colors.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Hex(0xffffff)
	ColorBlack       = Hex(0x000000)

	// rgba(0,0,0,0.8) panel behind white hover text
	ColorTooltipBg   = ColorBlack.WithAlpha(0.8)
	ColorTooltipText = ColorWhite
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// Hex creates an opaque color from a 0xRRGGBB value.
func Hex(c uint32) Color {
	return RGBA(uint8(c>>16), uint8(c>>8), uint8(c), 0xff)
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}
