// Package lighting provides the light rig for the map scene.
package lighting

import (
	"github.com/Faultbox/mallmap/pkg/math"
)

// AmbientLight lights every surface evenly.
type AmbientLight struct {
	Color     uint32 // 0xRRGGBB
	Intensity float32
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Color     uint32 // 0xRRGGBB
	Intensity float32
	Position  math.Vec3
}

// Rig is the full set of lights for a frame.
type Rig struct {
	Ambient     AmbientLight
	Directional DirectionalLight
}

// DefaultRig returns soft white ambient plus a key light above and to the right.
func DefaultRig() Rig {
	return Rig{
		Ambient: AmbientLight{Color: 0xffffff, Intensity: 0.7},
		Directional: DirectionalLight{
			Color:     0xffffff,
			Intensity: 0.6,
			Position:  math.Vec3{X: 500, Y: 1000, Z: 500},
		},
	}
}

// Direction returns the normalized vector pointing towards the light.
func (d DirectionalLight) Direction() [3]float32 {
	dir := d.Position.Normalize()
	if dir == (math.Vec3{}) {
		return [3]float32{0, 1, 0}
	}
	return dir.Array()
}

// AmbientColor returns the ambient color premultiplied by intensity.
func (r Rig) AmbientColor() [3]float32 {
	return Scaled(r.Ambient.Color, r.Ambient.Intensity)
}

// DiffuseColor returns the directional color premultiplied by intensity.
func (r Rig) DiffuseColor() [3]float32 {
	return Scaled(r.Directional.Color, r.Directional.Intensity)
}

// RGB converts a 0xRRGGBB color to float components in [0, 1].
func RGB(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xff) / 255.0,
		float32((hex>>8)&0xff) / 255.0,
		float32(hex&0xff) / 255.0,
	}
}

// Scaled returns RGB(hex) multiplied by s.
func Scaled(hex uint32, s float32) [3]float32 {
	c := RGB(hex)
	return [3]float32{c[0] * s, c[1] * s, c[2] * s}
}
