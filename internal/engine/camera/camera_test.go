package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

var (
	startPos    = mgl32.Vec3{0.999, 0.2, -0.001681}
	startTarget = mgl32.Vec3{0, 0.1392, -1}
	worldUp     = mgl32.Vec3{0, 1, 0}
)

func assertOrthonormal(t *testing.T, c *Rig) {
	t.Helper()
	for name, v := range map[string]mgl32.Vec3{"front": c.Front(), "right": c.Right(), "up": c.Up()} {
		if l := v.Len(); abs(l-1) > eps {
			t.Errorf("%s length = %f, want 1", name, l)
		}
	}
	if d := c.Front().Dot(c.Right()); abs(d) > eps {
		t.Errorf("front·right = %f, want 0", d)
	}
	if d := c.Front().Dot(c.Up()); abs(d) > eps {
		t.Errorf("front·up = %f, want 0", d)
	}
	if d := c.Right().Dot(c.Up()); abs(d) > eps {
		t.Errorf("right·up = %f, want 0", d)
	}
}

func TestNewBasisIsOrthonormal(t *testing.T) {
	c := New(startPos, startTarget, worldUp)
	assertOrthonormal(t, c)

	wantFront := startPos.Sub(startTarget).Normalize()
	if !vecNear(c.Front(), wantFront, eps) {
		t.Errorf("front = %v, want %v", c.Front(), wantFront)
	}
	wantRight := wantFront.Cross(worldUp).Normalize().Mul(-1)
	if !vecNear(c.Right(), wantRight, eps) {
		t.Errorf("right = %v, want %v", c.Right(), wantRight)
	}
}

func TestRotateKeepsBasisOrthonormal(t *testing.T) {
	c := New(startPos, startTarget, worldUp)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		pitch := rng.Float32()*178 - 89
		yaw := rng.Float32()*720 - 360
		c.Rotate(pitch, yaw)
		assertOrthonormal(t, c)
		if t.Failed() {
			t.Fatalf("basis broke after rotate(%f, %f)", pitch, yaw)
		}
	}
}

func TestRotateIsDeterministic(t *testing.T) {
	a := New(startPos, startTarget, worldUp)
	b := New(startPos, startTarget, worldUp)

	a.Rotate(12.5, -73)
	b.Rotate(12.5, -73)
	if a.Front() != b.Front() || a.Right() != b.Right() || a.Up() != b.Up() {
		t.Fatal("identical rotate calls produced different bases")
	}

	// Rotate is absolute: prior orientation does not leak into the result.
	a.Rotate(-40, 200)
	a.Rotate(12.5, -73)
	if a.Front() != b.Front() || a.Right() != b.Right() || a.Up() != b.Up() {
		t.Fatal("rotate depends on previous orientation")
	}
}

func TestRotateInitialYaw(t *testing.T) {
	c := New(startPos, startTarget, worldUp)
	c.Rotate(0, -90)

	if !vecNear(c.Front(), mgl32.Vec3{1, 0, 0}, eps) {
		t.Errorf("front = %v, want (1, 0, 0)", c.Front())
	}
	if !vecNear(c.Right(), mgl32.Vec3{0, 0, 1}, eps) {
		t.Errorf("right = %v, want (0, 0, 1)", c.Right())
	}
	if !vecNear(c.Up(), mgl32.Vec3{0, 1, 0}, eps) {
		t.Errorf("up = %v, want (0, 1, 0)", c.Up())
	}
}

func TestMoveRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		there       Direction
		back        Direction
		pitch       float32
		yaw         float32
		speed       float32
		rotateFirst bool
	}{
		{"forward/backward at start", Forward, Backward, 0, 0, 0.05, false},
		{"forward/backward pitched", Forward, Backward, 35, 120, 0.5, true},
		{"left/right", Left, Right, -20, 45, 0.05, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(startPos, startTarget, worldUp)
			if tt.rotateFirst {
				c.Rotate(tt.pitch, tt.yaw)
			}
			origin := c.Position()

			c.Move(tt.there, tt.speed)
			if vecNear(c.Position(), origin, 1e-7) {
				t.Fatal("move did not change position")
			}
			c.Move(tt.back, tt.speed)
			if !vecNear(c.Position(), origin, eps) {
				t.Errorf("position = %v, want %v", c.Position(), origin)
			}
		})
	}
}

func TestMoveForwardUsesUnnormalisedHorizontalFront(t *testing.T) {
	c := New(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, worldUp)
	c.Rotate(60, 0) // front = (0, sin60, -cos60)

	c.Move(Forward, 1)
	got := c.Position()
	if abs(got.Y()) > eps {
		t.Errorf("forward move changed height: %v", got)
	}
	if abs(got.Z()-0.5) > eps || abs(got.X()) > eps {
		t.Errorf("position = %v, want (0, 0, 0.5)", got)
	}
}

func TestMoveStrafeFollowsRight(t *testing.T) {
	c := New(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, worldUp)
	c.Rotate(0, -90) // right = (0, 0, 1)

	c.Move(Left, 2)
	if !vecNear(c.Position(), mgl32.Vec3{0, 0, 2}, eps) {
		t.Errorf("left: position = %v, want (0, 0, 2)", c.Position())
	}
	c.Move(Right, 3)
	if !vecNear(c.Position(), mgl32.Vec3{0, 0, -1}, eps) {
		t.Errorf("right: position = %v, want (0, 0, -1)", c.Position())
	}
}

func TestViewMatrixScenario(t *testing.T) {
	c := New(startPos, startTarget, worldUp)
	view := c.ViewMatrix()

	eye := view.Mul4x1(startPos.Vec4(1)).Vec3()
	if !vecNear(eye, mgl32.Vec3{}, eps) {
		t.Errorf("eye in camera space = %v, want origin", eye)
	}

	// The look point sits one unit down the camera's -Z axis.
	look := view.Mul4x1(c.Position().Sub(c.Front()).Vec4(1)).Vec3()
	if !vecNear(look, mgl32.Vec3{0, 0, -1}, eps) {
		t.Errorf("look point in camera space = %v, want (0, 0, -1)", look)
	}
}

func TestViewMatrixTracksMovement(t *testing.T) {
	c := New(startPos, startTarget, worldUp)
	c.Rotate(10, -90)
	c.Move(Forward, 0.3)
	c.Move(Left, 0.1)

	eye := c.ViewMatrix().Mul4x1(c.Position().Vec4(1)).Vec3()
	if !vecNear(eye, mgl32.Vec3{}, eps) {
		t.Errorf("eye in camera space = %v, want origin", eye)
	}
}

func TestProjection(t *testing.T) {
	got := Projection(45, 800, 600, 0.1, 100)
	want := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100)
	if got != want {
		t.Errorf("Projection = %v, want %v", got, want)
	}

	// Points on the near and far planes land on NDC depth -1 and 1.
	for _, tt := range []struct{ z, ndc float32 }{{-0.1, -1}, {-100, 1}} {
		clip := got.Mul4x1(mgl32.Vec4{0, 0, tt.z, 1})
		if d := clip.Z() / clip.W(); abs(d-tt.ndc) > 1e-4 {
			t.Errorf("depth at z=%v is %v, want %v", tt.z, d, tt.ndc)
		}
	}

	flat := Projection(45, 800, 0, 0.1, 100)
	if flat != Projection(45, 800, 1, 0.1, 100) {
		t.Error("zero height should behave like height 1")
	}
}

func TestDirectionString(t *testing.T) {
	if Forward.String() != "forward" || Right.String() != "right" {
		t.Error("unexpected direction names")
	}
	if Direction(42).String() != "unknown" {
		t.Error("expected unknown for out-of-range direction")
	}
}

// vecNear compares component-wise with an absolute tolerance.
func vecNear(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
