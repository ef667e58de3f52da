package lighting

import "github.com/go-gl/mathgl/mgl32"

// Shadow frustum constants for the directional light.
const (
	ShadowDistance   = 50
	ShadowHalfExtent = 4.5
	ShadowNear       = 1
	ShadowFar        = 100
)

var worldUp = mgl32.Vec3{0, 1, 0}

// DirectionalLight is a light at infinity shining along -Direction.
// Direction points from the scene towards the light and need not be unit length.
type DirectionalLight struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
}

// Moon returns the scene's directional light.
func Moon() DirectionalLight {
	return DirectionalLight{
		Direction: mgl32.Vec3{0, 1, 1},
		Color:     mgl32.Vec3{0.1, 0.15, 0.25},
	}
}

// LightSpace returns the light-space matrix for the shadow pass.
func (l DirectionalLight) LightSpace() mgl32.Mat4 {
	return LightSpaceMatrix(l.Direction, ShadowDistance, ShadowHalfExtent, ShadowNear, ShadowFar)
}

// LightSpaceMatrix returns ortho(±halfExtent, near, far) × lookAt(dir·distance, origin, +Y).
// It depends on nothing but its arguments.
func LightSpaceMatrix(dir mgl32.Vec3, distance, halfExtent, near, far float32) mgl32.Mat4 {
	view := mgl32.LookAtV(dir.Mul(distance), mgl32.Vec3{}, worldUp)
	proj := mgl32.Ortho(-halfExtent, halfExtent, -halfExtent, halfExtent, near, far)
	return proj.Mul4(view)
}
