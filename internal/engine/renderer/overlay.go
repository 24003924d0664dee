package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mallmap/internal/engine/renderer/shaders"
	"github.com/Faultbox/mallmap/internal/engine/shader"
	"github.com/Faultbox/mallmap/internal/engine/ui2d"
	"github.com/Faultbox/mallmap/pkg/math"
)

// overlay draws ui2d draw lists: solid quads then glyph quads, blended,
// without depth.
type overlay struct {
	solidProgram *shader.Program
	textProgram  *shader.Program

	solidVAO, solidVBO uint32
	textVAO, textVBO   uint32

	fontTex uint32
}

func newOverlay(font *ui2d.Font) (*overlay, error) {
	o := &overlay{}

	var err error
	o.solidProgram, err = shader.NewProgram(shaders.SolidVertexShader, shaders.SolidFragmentShader, "uProjection")
	if err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}
	o.textProgram, err = shader.NewProgram(shaders.TextVertexShader, shaders.TextFragmentShader, "uProjection", "uTexture")
	if err != nil {
		o.close()
		return nil, fmt.Errorf("create text shader: %w", err)
	}

	// Solid: pos(3) + color(4)
	o.solidVAO, o.solidVBO = streamBuffers(ui2d.SolidStride, []attrib{{0, 3, 0}, {1, 4, 3}})
	// Text: pos(3) + texcoord(2) + color(4)
	o.textVAO, o.textVBO = streamBuffers(ui2d.TextStride, []attrib{{0, 3, 0}, {1, 2, 3}, {2, 4, 5}})

	if font != nil {
		o.fontTex = uploadAtlas(font)
	}
	return o, nil
}

type attrib struct {
	location uint32
	size     int32
	offset   int // floats
}

func streamBuffers(stride int, attribs []attrib) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	for _, a := range attribs {
		gl.VertexAttribPointerWithOffset(a.location, a.size, gl.FLOAT, false, int32(stride*4), uintptr(a.offset*4))
		gl.EnableVertexAttribArray(a.location)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

// uploadAtlas stores the glyph coverage as a single red channel texture.
// Image row 0 is uploaded first, so v=0 samples the top of the atlas.
func uploadAtlas(font *ui2d.Font) uint32 {
	atlas := font.Atlas()
	b := atlas.Bounds()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RED, gl.UNSIGNED_BYTE, unsafe.Pointer(&atlas.Pix[0]))

	// Nearest keeps the bitmap glyphs crisp at integer scales
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func (o *overlay) draw(list *ui2d.DrawList, width, height int) {
	var prevDepth, prevCull int32
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)
	gl.GetIntegerv(gl.CULL_FACE, &prevCull)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	// Top-left origin, y down
	proj := math.Ortho(0, float32(width), float32(height), 0, -1, 1)

	if len(list.Solid) > 0 {
		o.solidProgram.Use()
		o.solidProgram.SetMat4("uProjection", proj)
		streamDraw(o.solidVAO, o.solidVBO, list.Solid, ui2d.SolidStride)
	}

	if len(list.Text) > 0 && o.fontTex != 0 {
		o.textProgram.Use()
		o.textProgram.SetMat4("uProjection", proj)
		o.textProgram.SetInt("uTexture", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, o.fontTex)
		streamDraw(o.textVAO, o.textVBO, list.Text, ui2d.TextStride)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Disable(gl.BLEND)
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
	if prevCull == gl.TRUE {
		gl.Enable(gl.CULL_FACE)
	}
}

func streamDraw(vao, vbo uint32, vertices []float32, stride int) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/stride))
}

func (o *overlay) close() {
	for _, vao := range []*uint32{&o.solidVAO, &o.textVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, vbo := range []*uint32{&o.solidVBO, &o.textVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
		}
	}
	if o.fontTex != 0 {
		gl.DeleteTextures(1, &o.fontTex)
	}
	if o.solidProgram != nil {
		o.solidProgram.Delete()
	}
	if o.textProgram != nil {
		o.textProgram.Delete()
	}
}
