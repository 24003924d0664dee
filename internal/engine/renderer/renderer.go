// Package renderer draws the mall map with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mallmap/internal/engine/geometry"
	"github.com/Faultbox/mallmap/internal/engine/lighting"
	"github.com/Faultbox/mallmap/internal/engine/renderer/shaders"
	"github.com/Faultbox/mallmap/internal/engine/shader"
	"github.com/Faultbox/mallmap/internal/engine/ui2d"
	"github.com/Faultbox/mallmap/internal/logger"
	"github.com/Faultbox/mallmap/internal/mall"
	"github.com/Faultbox/mallmap/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	MSAA   bool

	// DrawableSize reports the framebuffer size in pixels. When nil the
	// logical size passed to Resize is used.
	DrawableSize func() (int, int)
}

// gpuMesh is an uploaded indexed triangle mesh.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	// Framebuffer size in pixels
	pixelW, pixelH int

	lights lighting.Rig

	meshProgram *shader.Program
	lineProgram *shader.Program

	floor  gpuMesh
	store  gpuMesh
	marker gpuMesh

	routeVAO, routeVBO uint32
	routeCount         int32

	overlay *overlay
}

// New creates a renderer and uploads the static scene geometry.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, scene *mall.Scene, font *ui2d.Font) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		lights: lighting.DefaultRig(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	if cfg.MSAA {
		gl.Enable(gl.MULTISAMPLE)
	}
	bg := lighting.RGB(scene.Background)
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)

	var err error
	r.meshProgram, err = shader.NewProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader,
		"uMVP", "uModel", "uColor", "uAmbient", "uDiffuse", "uLightDir")
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.lineProgram, err = shader.NewProgram(shaders.LineVertexShader, shaders.LineFragmentShader,
		"uMVP", "uColor")
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("line shader: %w", err)
	}

	r.floor = uploadMesh(geometry.Box(scene.Floor.Size))
	r.store = uploadMesh(geometry.Box(mall.StoreSize))
	r.marker = uploadMesh(geometry.Sphere(scene.Marker.Radius, scene.Marker.WidthSegments, scene.Marker.HeightSegments))
	r.uploadRoute(scene.Route)

	r.overlay, err = newOverlay(font)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("overlay: %w", err)
	}

	r.Resize(cfg.Width, cfg.Height)

	r.log.Debug("scene uploaded",
		zap.Int("stores", scene.Group.Len()),
		zap.Int("routePoints", len(scene.Route)),
		zap.Int32("markerIndices", r.marker.indexCount),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, m := range []*gpuMesh{&r.floor, &r.store, &r.marker} {
		m.delete()
	}
	if r.routeVAO != 0 {
		gl.DeleteVertexArrays(1, &r.routeVAO)
	}
	if r.routeVBO != 0 {
		gl.DeleteBuffers(1, &r.routeVBO)
	}
	if r.meshProgram != nil {
		r.meshProgram.Delete()
	}
	if r.lineProgram != nil {
		r.lineProgram.Delete()
	}
	if r.overlay != nil {
		r.overlay.close()
	}
}

// Resize updates the viewport for a window of width x height screen units.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height

	r.pixelW, r.pixelH = width, height
	if r.config.DrawableSize != nil {
		r.pixelW, r.pixelH = r.config.DrawableSize()
	}
	gl.Viewport(0, 0, int32(r.pixelW), int32(r.pixelH))

	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("pixelWidth", r.pixelW),
		zap.Int("pixelHeight", r.pixelH),
	)
}

// Begin starts a new frame by clearing to the scene background.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawScene draws the floor, stores, route and marker.
func (r *Renderer) DrawScene(scene *mall.Scene, viewProj math.Mat4, marker math.Vec3) {
	p := r.meshProgram
	p.Use()
	p.SetVec3("uAmbient", r.lights.AmbientColor())
	p.SetVec3("uDiffuse", r.lights.DiffuseColor())
	p.SetVec3("uLightDir", r.lights.Directional.Direction())

	r.drawMesh(&r.floor, viewProj, scene.Floor.Center, scene.Floor.Color)
	for _, s := range scene.Group.Stores {
		r.drawMesh(&r.store, viewProj, s.Position, s.Color)
	}
	r.drawMesh(&r.marker, viewProj, marker, scene.Marker.Color)

	if r.routeCount > 1 {
		r.lineProgram.Use()
		r.lineProgram.SetMat4("uMVP", viewProj)
		r.lineProgram.SetVec3("uColor", lighting.RGB(scene.RouteColor))
		gl.BindVertexArray(r.routeVAO)
		gl.DrawArrays(gl.LINE_STRIP, 0, r.routeCount)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (r *Renderer) drawMesh(m *gpuMesh, viewProj math.Mat4, at math.Vec3, color uint32) {
	model := math.Translate(at.X, at.Y, at.Z)
	r.meshProgram.SetMat4("uMVP", viewProj.Mul(model))
	r.meshProgram.SetMat4("uModel", model)
	r.meshProgram.SetVec3("uColor", lighting.RGB(color))

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
}

// DrawOverlay draws screen-space UI over the scene. width and height are
// the logical window size the draw list was laid out in.
func (r *Renderer) DrawOverlay(list *ui2d.DrawList, width, height int) {
	if list == nil || list.Empty() {
		return
	}
	r.overlay.draw(list, width, height)
}

// Capture reads back the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) Capture() ([]byte, int, int) {
	w, h := r.pixelW, r.pixelH
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func uploadMesh(mesh geometry.Mesh) gpuMesh {
	var m gpuMesh
	vertices := mesh.Interleaved()

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	// Vertex format: pos(3) + normal(3)
	stride := int32(geometry.FloatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	m.indexCount = int32(len(mesh.Indices))
	return m
}

func (m *gpuMesh) delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	*m = gpuMesh{}
}

func (r *Renderer) uploadRoute(route []math.Vec3) {
	vertices := geometry.LineStrip(route)
	if len(vertices) == 0 {
		return
	}

	gl.GenVertexArrays(1, &r.routeVAO)
	gl.BindVertexArray(r.routeVAO)

	gl.GenBuffers(1, &r.routeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.routeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	r.routeCount = int32(len(vertices) / 3)
}
