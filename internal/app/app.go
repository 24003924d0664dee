// Package app wires the mall scene, marker animation, hover picking and
// camera controls into a frame loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/mallmap/internal/config"
	"github.com/Faultbox/mallmap/internal/engine/camera"
	"github.com/Faultbox/mallmap/internal/engine/debug"
	"github.com/Faultbox/mallmap/internal/engine/input"
	"github.com/Faultbox/mallmap/internal/engine/ui2d"
	"github.com/Faultbox/mallmap/internal/logger"
	"github.com/Faultbox/mallmap/internal/mall"
	"github.com/Faultbox/mallmap/pkg/math"
)

// Surface is where frames are drawn. The GL renderer implements it.
type Surface interface {
	Resize(width, height int)
	Begin()
	DrawScene(scene *mall.Scene, viewProj math.Mat4, marker math.Vec3)
	DrawOverlay(list *ui2d.DrawList, width, height int)
	// Capture returns bottom-up RGBA rows of the last drawn frame.
	Capture() (pixels []byte, width, height int)
}

// Window delivers events and presents frames.
type Window interface {
	PollEvents(in *input.Input) bool
	SwapBuffers()
}

// App is the running map viewer.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	scene    *mall.Scene
	animator *mall.Animator
	hover    *mall.Hover
	marker   math.Vec3
	tooltip  mall.HoverState

	camera *camera.PerspectiveCamera
	orbit  *camera.OrbitCamera
	home   math.Vec3 // Initial eye, restored by the reset key
	homeAt math.Vec3

	width, height int

	dragging bool
	panning  bool

	surface     Surface
	overlay     *ui2d.DrawList
	screenshots *debug.Screenshots
	capture     bool

	frames int
}

// New creates the viewer for scene and sizes it to the configured window.
func New(cfg *config.Config, scene *mall.Scene, surface Surface, font *ui2d.Font) (*App, error) {
	animator, err := mall.NewAnimator(scene.Route, cfg.Animation.Step)
	if err != nil {
		return nil, fmt.Errorf("creating animator: %w", err)
	}

	cc := cfg.Camera
	cam := camera.NewPerspectiveCamera(cc.FOV, 1, cc.Near, cc.Far)
	eye := math.Vec3{X: cc.Position[0], Y: cc.Position[1], Z: cc.Position[2]}
	at := math.Vec3{X: cc.Target[0], Y: cc.Target[1], Z: cc.Target[2]}
	cam.LookAt(eye, at)

	orbit := camera.NewOrbitCamera()
	orbit.DragSensitivity = cc.DragSensitivity
	orbit.ZoomSensitivity = cc.ZoomSensitivity
	orbit.FromLookAt(eye, at)

	a := &App{
		cfg:         cfg,
		log:         logger.Named("app"),
		running:     true,
		scene:       scene,
		animator:    animator,
		hover:       mall.NewHover(&scene.Group, cfg.Tooltip.Offset),
		marker:      animator.Position(),
		camera:      cam,
		orbit:       orbit,
		home:        eye,
		homeAt:      at,
		surface:     surface,
		overlay:     ui2d.NewDrawList(font),
		screenshots: debug.NewScreenshots(cfg.Debug.ScreenshotDir, "mallmap"),
	}
	a.resize(cfg.Graphics.Width, cfg.Graphics.Height)

	a.log.Info("viewer ready",
		zap.Int("stores", scene.Group.Len()),
		zap.Int("routePoints", len(scene.Route)),
		zap.Float64("step", animator.Step()),
		zap.Int("ticksPerLoop", animator.TicksPerLoop()),
	)
	return a, nil
}

// Running reports whether the loop should continue.
func (a *App) Running() bool {
	return a.running
}

// Stop ends the loop after the current frame.
func (a *App) Stop() {
	a.running = false
}

// Camera returns the perspective camera.
func (a *App) Camera() *camera.PerspectiveCamera {
	return a.camera
}

// Tooltip returns the hover state from the latest pointer move.
func (a *App) Tooltip() mall.HoverState {
	return a.tooltip
}

// Marker returns the marker position drawn in the next frame.
func (a *App) Marker() math.Vec3 {
	return a.marker
}

// Animator returns the marker animator.
func (a *App) Animator() *mall.Animator {
	return a.animator
}

// HandleEvent applies one input event.
func (a *App) HandleEvent(e input.Event) {
	switch e.Type {
	case input.EventQuit:
		a.Stop()

	case input.EventWindowResize:
		a.resize(e.Width, e.Height)

	case input.EventMouseMove:
		if a.dragging {
			a.orbit.HandleDrag(float32(e.RelX), float32(e.RelY))
			a.orbit.Apply(a.camera)
		} else if a.panning {
			a.orbit.HandlePan(float32(e.RelX), float32(e.RelY))
			a.orbit.Apply(a.camera)
		}
		a.pointerMoved(e.MouseX, e.MouseY)

	case input.EventMouseDown:
		switch e.Button {
		case input.ButtonLeft:
			a.dragging = true
		case input.ButtonRight:
			a.panning = true
		}

	case input.EventMouseUp:
		switch e.Button {
		case input.ButtonLeft:
			a.dragging = false
		case input.ButtonRight:
			a.panning = false
		}

	case input.EventMouseWheel:
		a.orbit.HandleZoom(e.WheelY)
		a.orbit.Apply(a.camera)

	case input.EventKeyDown:
		switch e.Key {
		case input.KeyEscape:
			a.Stop()
		case input.KeyF12:
			a.capture = true
		case input.KeyR:
			a.resetView()
		}
	}
}

// pointerMoved recomputes the tooltip for the pointer at (x, y).
func (a *App) pointerMoved(x, y int) {
	prev := a.tooltip
	a.tooltip = a.hover.Update(float32(x), float32(y), float32(a.width), float32(a.height), a.camera.InverseViewProjection())

	if a.tooltip.Label != prev.Label {
		if a.tooltip.Visible {
			a.log.Debug("store hovered", zap.String("store", a.tooltip.Label))
		} else {
			a.log.Debug("hover cleared")
		}
	}
}

// resize updates the camera aspect, the surface viewport and the overlay
// space. Minimized windows report zero sizes and are ignored.
func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.width, a.height = width, height
	a.camera.Resize(width, height)
	a.surface.Resize(width, height)
}

func (a *App) resetView() {
	a.orbit.FromLookAt(a.home, a.homeAt)
	a.orbit.Apply(a.camera)
	a.log.Debug("view reset")
}

// Update advances the marker by one step. Called once per frame.
func (a *App) Update() {
	a.marker = a.animator.Tick()
	a.orbit.Apply(a.camera)
}

// Render draws one frame to the surface.
func (a *App) Render() {
	a.surface.Begin()
	a.surface.DrawScene(a.scene, a.camera.ViewProjection(), a.marker)

	a.overlay.Reset()
	if a.tooltip.Visible && a.overlay.Font() != nil {
		a.overlay.DrawTooltip(a.tooltip.Label, a.tooltip.ScreenX, a.tooltip.ScreenY,
			a.cfg.Tooltip.Scale, float32(a.width), float32(a.height))
	}
	a.surface.DrawOverlay(a.overlay, a.width, a.height)

	if a.capture {
		a.capture = false
		a.saveScreenshot()
	}
}

func (a *App) saveScreenshot() {
	pixels, w, h := a.surface.Capture()
	path, err := a.screenshots.SavePixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Run polls events, updates and renders until the window closes or Stop is
// called. Everything happens on the calling goroutine, which must be the
// thread that owns the GL context.
func (a *App) Run(win Window) {
	in := input.New()
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")
	for a.Running() {
		if win.PollEvents(in) {
			a.Stop()
		}
		for _, e := range in.Events() {
			a.HandleEvent(e)
		}
		if !a.Running() {
			break
		}

		a.Update()
		a.Render()
		win.SwapBuffers()

		a.frames++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", a.frames), zap.Int("segment", a.animator.State().Segment))
			a.frames = 0
			fpsTimer = time.Now()
		}
	}
	a.log.Info("frame loop stopped")
}
