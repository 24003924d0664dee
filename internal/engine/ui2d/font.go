package ui2d

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph    = ' '
	lastGlyph     = '~'
	atlasColumns  = 16
	fallbackGlyph = '?'
)

// Font is a fixed-width bitmap font rasterized into a single alpha atlas.
// Only printable ASCII is present; other runes draw as '?'.
type Font struct {
	atlas  *image.Alpha
	glyphW int
	glyphH int
	rows   int
}

// NewFont rasterizes basicfont.Face7x13 into an atlas.
func NewFont() *Font {
	face := basicfont.Face7x13
	metrics := face.Metrics()

	f := &Font{
		glyphW: face.Advance,
		glyphH: metrics.Height.Ceil(),
	}

	count := int(lastGlyph-firstGlyph) + 1
	f.rows = (count + atlasColumns - 1) / atlasColumns
	f.atlas = image.NewAlpha(image.Rect(0, 0, atlasColumns*f.glyphW, f.rows*f.glyphH))

	d := &font.Drawer{
		Dst:  f.atlas,
		Src:  image.Opaque,
		Face: face,
	}
	ascent := metrics.Ascent.Ceil()
	for ch := firstGlyph; ch <= lastGlyph; ch++ {
		col, row := f.cell(ch)
		d.Dot = fixed.P(col*f.glyphW, row*f.glyphH+ascent)
		d.DrawString(string(ch))
	}

	return f
}

func (f *Font) cell(ch rune) (col, row int) {
	if ch < firstGlyph || ch > lastGlyph {
		ch = fallbackGlyph
	}
	i := int(ch - firstGlyph)
	return i % atlasColumns, i / atlasColumns
}

// Atlas returns the glyph atlas. Pixel (0,0) is the top-left of the image.
func (f *Font) Atlas() *image.Alpha {
	return f.atlas
}

// GlyphSize returns the size of one glyph cell in pixels.
func (f *Font) GlyphSize() (int, int) {
	return f.glyphW, f.glyphH
}

// GlyphUV returns the atlas texture coordinates of a glyph, v growing downward.
func (f *Font) GlyphUV(ch rune) (u0, v0, u1, v1 float32) {
	col, row := f.cell(ch)
	w := float32(f.atlas.Rect.Dx())
	h := float32(f.atlas.Rect.Dy())
	u0 = float32(col*f.glyphW) / w
	v0 = float32(row*f.glyphH) / h
	u1 = float32((col+1)*f.glyphW) / w
	v1 = float32((row+1)*f.glyphH) / h
	return u0, v0, u1, v1
}

// MeasureText returns the width and height of rendered text.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	widest := 0
	for _, line := range lines {
		widest = max(widest, len([]rune(line)))
	}
	return float32(widest*f.glyphW) * scale, float32(len(lines)*f.glyphH) * scale
}
