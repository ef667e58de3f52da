// Package render sequences the per-frame GPU passes: a depth pass from the
// directional light followed by the camera pass that samples it.
//
// The package holds no GL calls of its own. Programs, meshes, the depth
// target and global device state are reached through the interfaces below,
// implemented by the engine packages.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked shader program with uniforms addressed by name.
// Setters ignore names the program does not use.
type Program interface {
	Use()
	SetMat4(name string, m mgl32.Mat4)
	SetMat3(name string, m mgl32.Mat3)
	SetVec3(name string, v mgl32.Vec3)
	SetInt(name string, v int32)
}

// Drawable issues the draw calls for one mesh with the program in use.
type Drawable interface {
	Draw(p Program)
}

// Backdrop is drawn behind everything else, typically a skybox.
type Backdrop interface {
	Draw(p Program, view, projection mgl32.Mat4)
}

// DepthTarget is the off-screen depth buffer written by the shadow pass.
type DepthTarget interface {
	// Bind makes the target current, sets the viewport to its resolution and
	// clears depth.
	Bind()
	// Unbind restores the default framebuffer.
	Unbind()
	// BindTexture binds the depth texture to texture unit unit.
	BindTexture(unit int32)
}

// Device is the global pipeline state the passes toggle.
type Device interface {
	// BeginFrame binds the default framebuffer, sets the viewport and clears
	// color and depth.
	BeginFrame(width, height int32)
	SetDepthTest(enabled bool)
	// BeginAdditive enables additive blending with depth writes and face
	// culling off; EndAdditive restores the defaults.
	BeginAdditive()
	EndAdditive()
}

// Item is one drawable object with its model matrix for this frame.
type Item struct {
	Name  string
	Model mgl32.Mat4
	Mesh  Drawable
}

// RenderPass selects what the camera pass outputs.
type RenderPass int

const (
	// Shaded is the lit, shadowed scene.
	Shaded RenderPass = iota
	// DepthVisualization shows the raw shadow depth texture full screen.
	DepthVisualization
)

func (p RenderPass) String() string {
	switch p {
	case Shaded:
		return "shaded"
	case DepthVisualization:
		return "depth"
	default:
		return "unknown"
	}
}

// Toggle flips between Shaded and DepthVisualization.
func (p RenderPass) Toggle() RenderPass {
	if p == DepthVisualization {
		return Shaded
	}
	return DepthVisualization
}

// NormalMatrix returns transpose(inverse(upper3x3(view*model))).
func NormalMatrix(view, model mgl32.Mat4) mgl32.Mat3 {
	return view.Mul4(model).Mat3().Inv().Transpose()
}
