// Package ui2d builds screen-space overlay geometry: solid quads and text
// quads sampled from a bitmap font atlas. Pixel coordinates have the origin
// at the top-left of the window.
package ui2d

const (
	// SolidStride is the float count per solid vertex: x, y, z, r, g, b, a.
	SolidStride = 7
	// TextStride is the float count per text vertex: x, y, z, u, v, r, g, b, a.
	TextStride = 9
)

// DrawList accumulates overlay triangles for one frame.
type DrawList struct {
	Solid []float32
	Text  []float32

	font *Font
}

// NewDrawList creates an empty draw list that lays out text with font.
func NewDrawList(font *Font) *DrawList {
	return &DrawList{
		Solid: make([]float32, 0, 256),
		Text:  make([]float32, 0, 1024),
		font:  font,
	}
}

// Font returns the font used for text.
func (d *DrawList) Font() *Font {
	return d.font
}

// Reset clears the list for a new frame.
func (d *DrawList) Reset() {
	d.Solid = d.Solid[:0]
	d.Text = d.Text[:0]
}

// Empty reports whether nothing was queued.
func (d *DrawList) Empty() bool {
	return len(d.Solid) == 0 && len(d.Text) == 0
}

// DrawRect queues a filled rectangle.
func (d *DrawList) DrawRect(x, y, width, height float32, c Color) {
	d.Solid = append(d.Solid,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+width, y, 0, c.R, c.G, c.B, c.A,
		x+width, y+height, 0, c.R, c.G, c.B, c.A,

		x, y, 0, c.R, c.G, c.B, c.A,
		x+width, y+height, 0, c.R, c.G, c.B, c.A,
		x, y+height, 0, c.R, c.G, c.B, c.A,
	)
}

// DrawText queues text with its top-left corner at (x, y).
func (d *DrawList) DrawText(x, y float32, text string, scale float32, c Color) {
	if d.font == nil {
		return
	}

	gw, gh := d.font.GlyphSize()
	charW := float32(gw) * scale
	charH := float32(gh) * scale

	curX := x
	for _, ch := range text {
		if ch == '\n' {
			curX = x
			y += charH
			continue
		}
		if ch == ' ' {
			curX += charW
			continue
		}

		u0, v0, u1, v1 := d.font.GlyphUV(ch)
		d.Text = append(d.Text,
			curX, y, 0, u0, v0, c.R, c.G, c.B, c.A,
			curX+charW, y, 0, u1, v0, c.R, c.G, c.B, c.A,
			curX+charW, y+charH, 0, u1, v1, c.R, c.G, c.B, c.A,

			curX, y, 0, u0, v0, c.R, c.G, c.B, c.A,
			curX+charW, y+charH, 0, u1, v1, c.R, c.G, c.B, c.A,
			curX, y+charH, 0, u0, v1, c.R, c.G, c.B, c.A,
		)
		curX += charW
	}
}
