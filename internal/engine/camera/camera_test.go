package camera

import (
	"testing"

	"github.com/Faultbox/mallmap/pkg/math"
)

func newTestCamera() *PerspectiveCamera {
	cam := NewPerspectiveCamera(60, 1280.0/720.0, 1, 5000)
	cam.LookAt(math.Vec3{X: 0, Y: 800, Z: 1200}, math.Vec3{})
	return cam
}

func TestResizeRoundTrip(t *testing.T) {
	cam := newTestCamera()
	cam.Resize(1280, 720)
	origAspect := cam.Aspect
	origProj := cam.ProjectionMatrix()

	cam.Resize(800, 1000)
	if cam.Aspect == origAspect {
		t.Fatal("aspect did not change after resize")
	}

	cam.Resize(1280, 720)
	if cam.Aspect != origAspect {
		t.Errorf("aspect = %v after round trip, want %v", cam.Aspect, origAspect)
	}
	if cam.ProjectionMatrix() != origProj {
		t.Error("projection not restored exactly after round trip")
	}
}

func TestResizeIdempotent(t *testing.T) {
	cam := newTestCamera()
	cam.Resize(1920, 1080)
	first := cam.ProjectionMatrix()
	cam.Resize(1920, 1080)
	if cam.ProjectionMatrix() != first {
		t.Error("replaying the same size changed the projection")
	}
}

func TestResizeIgnoresDegenerate(t *testing.T) {
	cam := newTestCamera()
	before := cam.Aspect
	cam.Resize(0, 720)
	cam.Resize(1280, 0)
	cam.Resize(-5, -5)
	if cam.Aspect != before {
		t.Errorf("aspect = %v, want unchanged %v", cam.Aspect, before)
	}
}

func TestWorldToScreenCenter(t *testing.T) {
	cam := newTestCamera()
	x, y, ok := cam.WorldToScreen(math.Vec3{}, 1280, 720)
	if !ok {
		t.Fatal("target should be in front of the camera")
	}
	if abs(x-640) > 0.5 || abs(y-360) > 0.5 {
		t.Errorf("target projects to (%v, %v), want (640, 360)", x, y)
	}

	if _, _, ok := cam.WorldToScreen(math.Vec3{X: 0, Y: 1600, Z: 2400}, 1280, 720); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestOrbitFromLookAt(t *testing.T) {
	eye := math.Vec3{X: 0, Y: 800, Z: 1200}
	orbit := NewOrbitCamera()
	orbit.FromLookAt(eye, math.Vec3{})

	if d := orbit.Position().Distance(eye); d > 0.1 {
		t.Errorf("orbit position = %v, want %v", orbit.Position(), eye)
	}

	cam := newTestCamera()
	cam.Position = math.Vec3{}
	orbit.Apply(cam)
	if cam.Position.Distance(eye) > 0.1 || cam.Target != (math.Vec3{}) {
		t.Errorf("Apply wrote position %v target %v", cam.Position, cam.Target)
	}
}

func TestOrbitClamps(t *testing.T) {
	orbit := NewOrbitCamera()

	orbit.HandleDrag(0, 1e6)
	if orbit.RotationX != orbit.MaxPitch {
		t.Errorf("pitch = %v, want clamped to %v", orbit.RotationX, orbit.MaxPitch)
	}
	orbit.HandleDrag(0, -1e6)
	if orbit.RotationX != orbit.MinPitch {
		t.Errorf("pitch = %v, want clamped to %v", orbit.RotationX, orbit.MinPitch)
	}

	orbit.HandleZoom(100)
	if orbit.Distance != orbit.MinDistance {
		t.Errorf("distance = %v, want clamped to %v", orbit.Distance, orbit.MinDistance)
	}
	orbit.HandleZoom(-1000)
	if orbit.Distance != orbit.MaxDistance {
		t.Errorf("distance = %v, want clamped to %v", orbit.Distance, orbit.MaxDistance)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestOrbitPanKeepsOffset(t *testing.T) {
	orbit := NewOrbitCamera()
	orbit.FromLookAt(math.Vec3{X: 0, Y: 800, Z: 1200}, math.Vec3{})
	offset := orbit.Position().Sub(orbit.Center())

	// Dragging right moves the center left, i.e. toward -X from this view
	orbit.HandlePan(100, 0)
	if orbit.CenterX >= 0 {
		t.Errorf("center x = %v, want negative after panning right", orbit.CenterX)
	}
	if abs(orbit.CenterZ) > 1e-3 {
		t.Errorf("horizontal pan moved center z to %v", orbit.CenterZ)
	}

	if d := orbit.Position().Sub(orbit.Center()).Distance(offset); d > 1e-2 {
		t.Errorf("pan changed the eye offset by %v", d)
	}
}
