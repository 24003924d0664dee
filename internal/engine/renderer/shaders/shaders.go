// Package shaders embeds the GLSL sources used by the renderer.
package shaders

import _ "embed"

// Lit meshes: floor, stores and marker.
var (
	//go:embed mesh.vert
	MeshVertexShader string
	//go:embed mesh.frag
	MeshFragmentShader string
)

// Unlit route polyline.
var (
	//go:embed line.vert
	LineVertexShader string
	//go:embed line.frag
	LineFragmentShader string
)

// Overlay quads.
var (
	//go:embed solid.vert
	SolidVertexShader string
	//go:embed solid.frag
	SolidFragmentShader string

	//go:embed text.vert
	TextVertexShader string
	//go:embed text.frag
	TextFragmentShader string
)
