// Package geometry generates triangle meshes and line strips for the map.
package geometry

import (
	gomath "math"

	"github.com/Faultbox/mallmap/pkg/math"
)

// Vertex is a mesh vertex with position and normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// FloatsPerVertex is the interleaved layout size: pos(3) + normal(3).
const FloatsPerVertex = 6

// Mesh holds indexed triangle data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Interleaved flattens vertices into pos+normal float runs.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2])
		out = append(out, v.Normal[0], v.Normal[1], v.Normal[2])
	}
	return out
}

// boxFaces lists each face as normal plus the two in-plane axes.
var boxFaces = [6]struct {
	normal, u, v [3]float32
}{
	{[3]float32{1, 0, 0}, [3]float32{0, 0, -1}, [3]float32{0, 1, 0}},
	{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}},
	{[3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
	{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 1}},
	{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
	{[3]float32{0, 0, -1}, [3]float32{-1, 0, 0}, [3]float32{0, 1, 0}},
}

// Box builds a box of the given full size centered at the origin.
// Each face has its own four vertices so normals stay flat.
func Box(size math.Vec3) Mesh {
	half := size.Scale(0.5).Array()
	mesh := Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range boxFaces {
		base := uint32(len(mesh.Vertices))
		for _, c := range corners {
			var p [3]float32
			for i := 0; i < 3; i++ {
				p[i] = (f.normal[i] + f.u[i]*c[0] + f.v[i]*c[1]) * half[i]
			}
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: p, Normal: f.normal})
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return mesh
}

// Sphere builds a UV sphere centered at the origin.
// widthSegments runs around Y, heightSegments from pole to pole.
func Sphere(radius float32, widthSegments, heightSegments int) Mesh {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	var mesh Mesh
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * gomath.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * gomath.Pi

			n := [3]float32{
				float32(-gomath.Cos(phi) * gomath.Sin(theta)),
				float32(gomath.Cos(theta)),
				float32(gomath.Sin(phi) * gomath.Sin(theta)),
			}
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
			})
		}
	}

	row := uint32(widthSegments + 1)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*row + uint32(ix+1)
			b := uint32(iy)*row + uint32(ix)
			c := uint32(iy+1)*row + uint32(ix)
			d := uint32(iy+1)*row + uint32(ix+1)

			// Poles collapse one triangle of each quad
			if iy != 0 {
				mesh.Indices = append(mesh.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				mesh.Indices = append(mesh.Indices, b, c, d)
			}
		}
	}
	return mesh
}

// LineStrip flattens points into x,y,z runs for a GL_LINE_STRIP.
func LineStrip(points []math.Vec3) []float32 {
	out := make([]float32, 0, len(points)*3)
	for _, p := range points {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}
