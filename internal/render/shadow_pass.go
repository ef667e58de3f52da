package render

import "github.com/go-gl/mathgl/mgl32"

// ShadowPass renders scene depth from the light into Target.
type ShadowPass struct {
	Target  DepthTarget
	Program Program
}

// Render draws every item into the depth target. The target is unbound only
// after the whole set has been drawn.
func (s *ShadowPass) Render(items []Item, lightSpace mgl32.Mat4) {
	s.Program.Use()
	s.Program.SetMat4("lightSpaceTrMatrix", lightSpace)

	s.Target.Bind()
	for _, it := range items {
		s.Program.SetMat4("model", it.Model)
		it.Mesh.Draw(s.Program)
	}
	s.Target.Unbind()
}
