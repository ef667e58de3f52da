package render

import (
	"github.com/Faultbox/witchhut/internal/engine/lighting"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame is everything a frame needs to be drawn. The frame loop builds a new
// one each frame and hands it to the pipeline.
type Frame struct {
	Width, Height int32

	View       mgl32.Mat4
	Projection mgl32.Mat4
	LightSpace mgl32.Mat4

	Pass        RenderPass
	Sun         lighting.DirectionalLight
	PointLights [lighting.PointLightCount]lighting.PointLight
	GlowColor   mgl32.Vec3

	// Opaque objects are drawn by both passes; Glow objects only by the
	// camera pass.
	Opaque []Item
	Glow   []Item
}

// Pipeline runs the shadow pass and then the camera pass.
type Pipeline struct {
	Shadow *ShadowPass
	Main   *MainPass
}

// Render draws one complete frame.
func (p *Pipeline) Render(f *Frame) {
	p.Shadow.Render(f.Opaque, f.LightSpace)
	p.Main.Render(f)
}
