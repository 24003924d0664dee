// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/mallmap/pkg/math"
)

// PerspectiveCamera is a pinhole camera looking from Position at Target.
type PerspectiveCamera struct {
	FovY   float32 // Vertical field of view, degrees
	Aspect float32 // Width / height
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3
}

// NewPerspectiveCamera creates a camera with the given lens and a Y-up basis.
func NewPerspectiveCamera(fovY, aspect, near, far float32) *PerspectiveCamera {
	return &PerspectiveCamera{
		FovY:   fovY,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     math.Vec3{X: 0, Y: 1, Z: 0},
	}
}

// LookAt points the camera from position at target.
func (c *PerspectiveCamera) LookAt(position, target math.Vec3) {
	c.Position = position
	c.Target = target
}

// Resize recomputes the aspect ratio for a viewport of width x height.
// Degenerate sizes (minimized windows) leave the projection unchanged.
func (c *PerspectiveCamera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ProjectionMatrix returns the perspective projection for the current lens.
func (c *PerspectiveCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(c.FovY), c.Aspect, c.Near, c.Far)
}

// ViewMatrix returns the view matrix for this camera.
func (c *PerspectiveCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ViewProjection returns projection * view.
func (c *PerspectiveCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// InverseViewProjection returns the unprojection matrix used for picking.
func (c *PerspectiveCamera) InverseViewProjection() math.Mat4 {
	return c.ViewProjection().Inverse()
}

// WorldToScreen projects a world point to pixel coordinates with the origin
// at the top-left. ok is false for points behind the camera.
func (c *PerspectiveCamera) WorldToScreen(p math.Vec3, width, height int) (x, y float32, ok bool) {
	clip := c.ViewProjection().MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	if clip[3] <= 0 {
		return 0, 0, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]

	x = (ndcX + 1) * 0.5 * float32(width)
	y = (1 - ndcY) * 0.5 * float32(height)
	return x, y, true
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	CenterX, CenterY, CenterZ float32

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
	PanSensitivity  float32 // World units per pixel per unit of distance
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        1000.0,
		RotationX:       0.5,
		RotationY:       0.0,
		MinDistance:     200.0,
		MaxDistance:     3000.0,
		MinPitch:        0.1,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.001,
	}
}

// FromLookAt sets the orbit so that Position() == eye while orbiting center.
// Distance and pitch limits are widened if eye lies outside them.
func (c *OrbitCamera) FromLookAt(eye, center math.Vec3) {
	c.SetCenter(center.X, center.Y, center.Z)

	offset := eye.Sub(center)
	dist := eye.Distance(center)
	if dist == 0 {
		return
	}
	c.Distance = dist
	c.RotationX = float32(gomath.Asin(float64(offset.Y / dist)))
	c.RotationY = float32(gomath.Atan2(float64(offset.X), float64(offset.Z)))

	c.MinDistance = min(c.MinDistance, dist)
	c.MaxDistance = max(c.MaxDistance, dist)
	c.MinPitch = min(c.MinPitch, c.RotationX)
	c.MaxPitch = max(c.MaxPitch, c.RotationX)
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return math.Vec3{
		X: c.CenterX + x,
		Y: c.CenterY + y,
		Z: c.CenterZ + z,
	}
}

// Center returns the orbit center.
func (c *OrbitCamera) Center() math.Vec3 {
	return math.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ}
}

// Apply writes the orbit position and center into a perspective camera.
func (c *OrbitCamera) Apply(cam *PerspectiveCamera) {
	cam.LookAt(c.Position(), c.Center())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandlePan slides the center in the view plane, so the scene follows a
// dragging pointer. The step grows with distance.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	forward := c.Center().Sub(c.Position()).Normalize()
	right := forward.Cross(math.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	scale := c.Distance * c.PanSensitivity
	move := right.Scale(-deltaX * scale).Add(up.Scale(deltaY * scale))
	c.SetCenter(c.CenterX+move.X, c.CenterY+move.Y, c.CenterZ+move.Z)
}

// SetCenter sets the camera's center point.
func (c *OrbitCamera) SetCenter(x, y, z float32) {
	c.CenterX = x
	c.CenterY = y
	c.CenterZ = z
}
