// Package picking provides ray casting against axis-aligned boxes.
package picking

import (
	gomath "math"

	"github.com/Faultbox/mallmap/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates with the origin at the top-left,
// viewportW/H are viewport dimensions and invViewProj is the inverse of the
// view-projection matrix. The ray starts on the near plane.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := unproject(invViewProj, ndcX, ndcY, -1)
	farWorld := unproject(invViewProj, ndcX, ndcY, 1)

	return Ray{
		Origin:    nearWorld,
		Direction: farWorld.Sub(nearWorld).Normalize(),
	}
}

func unproject(inv math.Mat4, x, y, z float32) math.Vec3 {
	p := inv.MulVec4(math.Vec4{x, y, z, 1})
	if p[3] != 0 {
		p[0] /= p[3]
		p[1] /= p[3]
		p[2] /= p[3]
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	bmin := box.Min.Array()
	bmax := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			// Parallel to the slab: must already be inside it
			if origin[axis] < bmin[axis] || origin[axis] > bmax[axis] {
				return 0, false
			}
			continue
		}

		t1 := (bmin[axis] - origin[axis]) / dir[axis]
		t2 := (bmax[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Nearest returns the index of the box the ray hits first, along with the
// hit distance. ok is false when no box is hit. Ties keep the earlier index.
func (r Ray) Nearest(boxes []AABB) (index int, t float32, ok bool) {
	index = -1
	for i, box := range boxes {
		d, hit := r.IntersectAABB(box)
		if !hit {
			continue
		}
		if !ok || d < t {
			index, t, ok = i, d, true
		}
	}
	return index, t, ok
}

// NewAABB creates an AABB from two opposite corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: math.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// BoxAABB returns the box of the given full size centered at center.
func BoxAABB(center, size math.Vec3) AABB {
	half := size.Scale(0.5)
	return NewAABB(center.Sub(half), center.Add(half))
}

// Center returns the midpoint of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}
