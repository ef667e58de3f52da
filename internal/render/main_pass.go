package render

import (
	"github.com/Faultbox/witchhut/internal/engine/lighting"
)

const (
	// ShadowTextureUnit is the texture unit the shaded program samples the
	// shadow map from.
	ShadowTextureUnit = 3
	// DepthViewUnit is the unit the depth quad samples from. Meshes bind
	// their material maps to units 0 and 1, so it must stay clear of those.
	DepthViewUnit = 2
)

// MainPass draws the camera view: either the lit scene with glow and skybox,
// or the depth texture on a full-screen quad.
type MainPass struct {
	Device Device
	Shadow DepthTarget

	Scene     Program // lit, shadowed objects
	Glow      Program // additive light glow
	Sky       Program
	DepthView Program // full-screen depth quad

	Skybox Backdrop
	Quad   Drawable
}

// Render draws the frame according to f.Pass.
func (m *MainPass) Render(f *Frame) {
	switch f.Pass {
	case DepthVisualization:
		m.renderDepth(f)
	default:
		m.renderShaded(f)
	}
}

func (m *MainPass) renderDepth(f *Frame) {
	m.Device.BeginFrame(f.Width, f.Height)

	m.DepthView.Use()
	m.Shadow.BindTexture(DepthViewUnit)
	m.DepthView.SetInt("depthMap", DepthViewUnit)

	m.Device.SetDepthTest(false)
	m.Quad.Draw(m.DepthView)
	m.Device.SetDepthTest(true)
}

func (m *MainPass) renderShaded(f *Frame) {
	m.Device.BeginFrame(f.Width, f.Height)

	p := m.Scene
	p.Use()
	p.SetMat4("view", f.View)
	p.SetMat4("projection", f.Projection)
	p.SetVec3("lightDir", f.Sun.Direction)
	p.SetVec3("lightColor", f.Sun.Color)
	for i, l := range f.PointLights {
		p.SetVec3(lighting.PositionUniforms[i], l.Position)
		p.SetVec3(lighting.ColorUniforms[i], l.Color)
	}

	m.Shadow.BindTexture(ShadowTextureUnit)
	p.SetInt("shadowMap", ShadowTextureUnit)
	p.SetMat4("lightSpaceTrMatrix", f.LightSpace)

	for _, it := range f.Opaque {
		p.SetMat4("model", it.Model)
		p.SetMat3("normalMatrix", NormalMatrix(f.View, it.Model))
		it.Mesh.Draw(p)
	}

	m.renderGlow(f)

	m.Sky.Use()
	m.Skybox.Draw(m.Sky, f.View.Mat3().Mat4(), f.Projection)
}

func (m *MainPass) renderGlow(f *Frame) {
	if len(f.Glow) == 0 {
		return
	}
	g := m.Glow
	g.Use()
	g.SetMat4("view", f.View)
	g.SetMat4("projection", f.Projection)
	g.SetVec3("lightColor", f.GlowColor)

	m.Device.BeginAdditive()
	for _, it := range f.Glow {
		g.SetMat4("model", it.Model)
		it.Mesh.Draw(g)
	}
	m.Device.EndAdditive()
}
