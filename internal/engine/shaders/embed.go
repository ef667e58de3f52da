// Package shaders provides the embedded GLSL sources of the renderer.
package shaders

import "embed"

// FS holds every shader source, addressed by file name.
//
//go:embed *.vert *.frag
var FS embed.FS

// Source file names of each program.
const (
	SceneVert  = "shaderStart.vert"
	SceneFrag  = "shaderStart.frag"
	DepthVert  = "depthMapShader.vert"
	DepthFrag  = "depthMapShader.frag"
	GlowVert   = "lightSource.vert"
	GlowFrag   = "lightSource.frag"
	QuadVert   = "screenQuad.vert"
	QuadFrag   = "screenQuad.frag"
	SkyboxVert = "skyboxShader.vert"
	SkyboxFrag = "skyboxShader.frag"
)
