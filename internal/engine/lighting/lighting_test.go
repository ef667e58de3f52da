package lighting

import (
	"math"
	"testing"

	"github.com/Faultbox/witchhut/internal/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if float32(math.Abs(float64(a[i]-b[i]))) > tol {
			return false
		}
	}
	return true
}

func project(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	return v.Vec3().Mul(1 / v.W())
}

func TestLightSpaceMatrixFrustum(t *testing.T) {
	moon := Moon()
	m := moon.LightSpace()

	if got := project(m, mgl32.Vec3{}); !near(got.Vec2().Vec3(0), mgl32.Vec3{}, 1e-5) {
		t.Errorf("origin projects to %v, want the centre of the light frustum", got)
	}

	eye := moon.Direction.Mul(ShadowDistance)
	toward := moon.Direction.Normalize().Mul(-1)

	nearPlane := project(m, eye.Add(toward.Mul(ShadowNear)))
	if math.Abs(float64(nearPlane.Z()+1)) > 1e-4 {
		t.Errorf("near plane depth = %v, want -1", nearPlane.Z())
	}
	farPlane := project(m, eye.Add(toward.Mul(ShadowFar)))
	if math.Abs(float64(farPlane.Z()-1)) > 1e-4 {
		t.Errorf("far plane depth = %v, want 1", farPlane.Z())
	}
}

func TestLightSpaceMatrixMatchesComposition(t *testing.T) {
	dir := mgl32.Vec3{0, 1, 1}
	want := mgl32.Ortho(-4.5, 4.5, -4.5, 4.5, 1, 100).
		Mul4(mgl32.LookAtV(mgl32.Vec3{0, 50, 50}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))

	if got := LightSpaceMatrix(dir, 50, 4.5, 1, 100); got != want {
		t.Errorf("LightSpaceMatrix = %v, want %v", got, want)
	}
}

func TestLightSpaceIndependentOfCamera(t *testing.T) {
	moon := Moon()
	before := moon.LightSpace()

	rig := camera.New(mgl32.Vec3{0.999, 0.2, -0.001681}, mgl32.Vec3{0, 0.1392, -1}, mgl32.Vec3{0, 1, 0})
	for i := 0; i < 50; i++ {
		rig.Rotate(float32(i%89), float32(i*37))
		rig.Move(camera.Forward, 0.3)
		rig.Move(camera.Left, 0.1)
		if got := moon.LightSpace(); got != before {
			t.Fatalf("light-space matrix changed after camera step %d", i)
		}
	}
}

func TestCottageLights(t *testing.T) {
	lights := CottageLights()

	if lights[0].Position != (mgl32.Vec3{0.633715, 0.178798, -3.02519}) {
		t.Errorf("light 0 position = %v", lights[0].Position)
	}
	if lights[3].Name != "house" || lights[3].Color != (mgl32.Vec3{0.1, 0.1, 0.5}) {
		t.Errorf("light 3 = %+v, want the blue house light", lights[3])
	}
	seen := map[string]bool{}
	for _, l := range lights {
		if seen[l.Name] {
			t.Errorf("duplicate light %s", l.Name)
		}
		seen[l.Name] = true
	}
}

func TestUniformNames(t *testing.T) {
	if PositionUniforms[0] != "pointLightPositions[0]" || PositionUniforms[6] != "pointLightPositions[6]" {
		t.Errorf("position uniforms = %v", PositionUniforms)
	}
	if ColorUniforms[4] != "pointLightColors[4]" {
		t.Errorf("color uniforms = %v", ColorUniforms)
	}
}
