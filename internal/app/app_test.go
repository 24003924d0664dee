package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/mallmap/internal/config"
	"github.com/Faultbox/mallmap/internal/engine/input"
	"github.com/Faultbox/mallmap/internal/engine/ui2d"
	"github.com/Faultbox/mallmap/internal/mall"
	"github.com/Faultbox/mallmap/pkg/math"
)

// fakeSurface records what the app asks it to draw.
type fakeSurface struct {
	resizes  [][2]int
	begins   int
	scenes   int
	markers  []math.Vec3
	overlays []int // Solid vertex count per overlay call
	captures int
}

func (s *fakeSurface) Resize(width, height int) { s.resizes = append(s.resizes, [2]int{width, height}) }
func (s *fakeSurface) Begin()                   { s.begins++ }

func (s *fakeSurface) DrawScene(_ *mall.Scene, _ math.Mat4, marker math.Vec3) {
	s.scenes++
	s.markers = append(s.markers, marker)
}

func (s *fakeSurface) DrawOverlay(list *ui2d.DrawList, _, _ int) {
	s.overlays = append(s.overlays, len(list.Solid)/ui2d.SolidStride)
}

func (s *fakeSurface) Capture() ([]byte, int, int) {
	s.captures++
	return make([]byte, 2*2*4), 2, 2
}

// scriptWindow replays one batch of events per frame, then asks to close.
type scriptWindow struct {
	frames [][]input.Event
	swaps  int
}

func (w *scriptWindow) PollEvents(in *input.Input) bool {
	in.Reset()
	if len(w.frames) == 0 {
		in.Push(input.Event{Type: input.EventQuit})
		return true
	}
	for _, e := range w.frames[0] {
		in.Push(e)
	}
	w.frames = w.frames[1:]
	return false
}

func (w *scriptWindow) SwapBuffers() { w.swaps++ }

func newTestApp(t *testing.T) (*App, *fakeSurface) {
	t.Helper()
	cfg := config.Default()
	cfg.Debug.ScreenshotDir = t.TempDir()

	scene, err := mall.BuildDefault()
	if err != nil {
		t.Fatalf("BuildDefault: %v", err)
	}
	surface := &fakeSurface{}
	a, err := New(cfg, scene, surface, ui2d.NewFont())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, surface
}

func storeRoof(t *testing.T, a *App, name string) (int, int) {
	t.Helper()
	for _, s := range a.scene.Group.Stores {
		if s.Name != name {
			continue
		}
		roof := s.Position.Add(math.Vec3{Y: mall.StoreSize.Y / 2})
		x, y, ok := a.Camera().WorldToScreen(roof, a.width, a.height)
		if !ok {
			t.Fatalf("%s is behind the camera", name)
		}
		return int(x + 0.5), int(y + 0.5)
	}
	t.Fatalf("no store %q", name)
	return 0, 0
}

func TestNewSizesSurface(t *testing.T) {
	a, surface := newTestApp(t)
	if len(surface.resizes) != 1 || surface.resizes[0] != [2]int{1280, 720} {
		t.Errorf("resizes = %v, want one 1280x720", surface.resizes)
	}
	if a.Marker() != mall.DefaultRoute[0] {
		t.Errorf("marker starts at %v, want route start", a.Marker())
	}
}

func TestResizeRoundTrip(t *testing.T) {
	a, surface := newTestApp(t)
	aspect := a.Camera().Aspect
	proj := a.Camera().ProjectionMatrix()

	a.HandleEvent(input.Event{Type: input.EventWindowResize, Width: 900, Height: 900})
	if a.Camera().Aspect != 1 {
		t.Errorf("aspect = %v after 900x900, want 1", a.Camera().Aspect)
	}

	a.HandleEvent(input.Event{Type: input.EventWindowResize, Width: 1280, Height: 720})
	if a.Camera().Aspect != aspect || a.Camera().ProjectionMatrix() != proj {
		t.Error("resize round trip did not restore the projection")
	}
	if got := surface.resizes[len(surface.resizes)-1]; got != [2]int{1280, 720} {
		t.Errorf("surface last resized to %v", got)
	}
}

func TestResizeIgnoresMinimized(t *testing.T) {
	a, surface := newTestApp(t)
	a.HandleEvent(input.Event{Type: input.EventWindowResize, Width: 0, Height: 0})
	if len(surface.resizes) != 1 {
		t.Errorf("surface resized for a zero-size window: %v", surface.resizes)
	}
	if a.width != 1280 || a.height != 720 {
		t.Errorf("viewport = %dx%d, want unchanged", a.width, a.height)
	}
}

func TestHoverShowsTooltip(t *testing.T) {
	a, surface := newTestApp(t)

	x, y := storeRoof(t, a, "Verizon")
	a.HandleEvent(input.Event{Type: input.EventMouseMove, MouseX: x, MouseY: y})

	tip := a.Tooltip()
	if !tip.Visible || tip.Label != "Verizon" {
		t.Fatalf("tooltip = %+v, want Verizon", tip)
	}
	if tip.ScreenY != float32(y)-20 {
		t.Errorf("tooltip y = %v, want %v", tip.ScreenY, y-20)
	}

	a.Render()
	if n := surface.overlays[len(surface.overlays)-1]; n != 6 {
		t.Errorf("overlay drew %d panel vertices, want 6", n)
	}

	a.HandleEvent(input.Event{Type: input.EventMouseMove, MouseX: 5, MouseY: 5})
	if a.Tooltip().Visible {
		t.Errorf("tooltip still visible over empty space: %+v", a.Tooltip())
	}
	a.Render()
	if n := surface.overlays[len(surface.overlays)-1]; n != 0 {
		t.Errorf("hidden tooltip drew %d vertices", n)
	}
}

func TestUpdateTicksMarker(t *testing.T) {
	a, surface := newTestApp(t)

	a.Update()
	if got := a.Animator().State(); got.Segment != 0 || got.Fraction != 0.005 {
		t.Errorf("state after one update = %+v", got)
	}
	want := math.Lerp(mall.DefaultRoute[0], mall.DefaultRoute[1], 0.005)
	if a.Marker() != want {
		t.Errorf("marker = %v, want %v", a.Marker(), want)
	}

	a.Render()
	if surface.begins != 1 || surface.scenes != 1 || surface.markers[0] != want {
		t.Errorf("render calls begin=%d scene=%d marker=%v", surface.begins, surface.scenes, surface.markers)
	}
}

func TestDragOrbitsAndResetRestores(t *testing.T) {
	a, _ := newTestApp(t)
	start := a.Camera().Position

	// Moving without a pressed button does not orbit
	a.HandleEvent(input.Event{Type: input.EventMouseMove, MouseX: 100, MouseY: 100, RelX: 40})
	if a.Camera().Position != start {
		t.Fatal("camera moved without a drag")
	}

	a.HandleEvent(input.Event{Type: input.EventMouseDown, Button: input.ButtonLeft})
	a.HandleEvent(input.Event{Type: input.EventMouseMove, MouseX: 140, MouseY: 100, RelX: 40})
	a.HandleEvent(input.Event{Type: input.EventMouseUp, Button: input.ButtonLeft})
	moved := a.Camera().Position
	if moved.Distance(start) < 1 {
		t.Fatalf("drag did not orbit: %v -> %v", start, moved)
	}
	if d := moved.Length() - start.Length(); d > 0.5 || d < -0.5 {
		t.Errorf("orbit changed distance to target by %v", d)
	}

	a.HandleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyR})
	if a.Camera().Position.Distance(start) > 0.1 {
		t.Errorf("reset left camera at %v, want %v", a.Camera().Position, start)
	}
}

func TestWheelZooms(t *testing.T) {
	a, _ := newTestApp(t)
	before := a.Camera().Position.Length()

	a.HandleEvent(input.Event{Type: input.EventMouseWheel, WheelY: 1})
	if after := a.Camera().Position.Length(); after >= before {
		t.Errorf("scrolling in: distance %v -> %v", before, after)
	}
}

func TestEscapeStops(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyEscape})
	if a.Running() {
		t.Error("Escape did not stop the app")
	}
}

func TestScreenshotKey(t *testing.T) {
	a, surface := newTestApp(t)

	a.HandleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyF12})
	if surface.captures != 0 {
		t.Fatal("capture before the frame was drawn")
	}
	a.Render()
	a.Render()
	if surface.captures != 1 {
		t.Errorf("captures = %d, want 1", surface.captures)
	}

	files, err := filepath.Glob(filepath.Join(a.cfg.Debug.ScreenshotDir, "mallmap_*.png"))
	if err != nil || len(files) != 1 {
		t.Fatalf("screenshots = %v (%v), want 1 file", files, err)
	}
	if info, err := os.Stat(files[0]); err != nil || info.Size() == 0 {
		t.Errorf("screenshot file empty or missing: %v", err)
	}
}

func TestRunUntilQuit(t *testing.T) {
	a, surface := newTestApp(t)
	x, y := storeRoof(t, a, "Bank")

	win := &scriptWindow{frames: [][]input.Event{
		{},
		{{Type: input.EventMouseMove, MouseX: x, MouseY: y}},
		{},
	}}
	a.Run(win)

	if a.Running() {
		t.Error("app still running after quit")
	}
	if win.swaps != 3 || surface.scenes != 3 {
		t.Errorf("swaps=%d scenes=%d, want 3 frames", win.swaps, surface.scenes)
	}
	if got := a.Animator().State(); got.Segment != 0 || got.Fraction < 0.0149 || got.Fraction > 0.0151 {
		t.Errorf("state after 3 frames = %+v", got)
	}
	if a.Tooltip().Label != "Bank" {
		t.Errorf("tooltip = %+v, want Bank", a.Tooltip())
	}
}
