// Package camera provides the first-person camera rig used to walk through the scene.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a movement intent relative to the camera basis.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// backward is the canonical axis Rotate spins into the new front vector.
var backward = mgl32.Vec4{0, 0, -1, 0}

// Rig holds the eye position and an orthonormal (front, right, up) basis.
//
// Front points from the look target back towards the eye, so the camera looks
// along -front. The basis is orthonormal after every Move and Rotate; inputs
// must be non-degenerate (non-zero, front not parallel to worldUp).
type Rig struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3
	worldUp  mgl32.Vec3
}

// New creates a rig at position looking at target.
func New(position, target, worldUp mgl32.Vec3) *Rig {
	front := position.Sub(target).Normalize()
	right := front.Cross(worldUp).Normalize().Mul(-1)
	return &Rig{
		position: position,
		front:    front,
		right:    right,
		up:       right.Cross(front),
		worldUp:  worldUp,
	}
}

// Position returns the eye position.
func (c *Rig) Position() mgl32.Vec3 { return c.position }

// Front returns the unit vector pointing from the look target to the eye.
func (c *Rig) Front() mgl32.Vec3 { return c.front }

// Right returns the unit right vector.
func (c *Rig) Right() mgl32.Vec3 { return c.right }

// Up returns the unit up vector.
func (c *Rig) Up() mgl32.Vec3 { return c.up }

// ViewMatrix returns the world-to-eye transform. The camera looks along -front.
func (c *Rig) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Sub(c.front), c.up)
}

// Move translates the eye by speed along a horizontal or strafe axis.
//
// Forward and backward use the front vector projected onto the XZ plane
// without renormalising it, so steep pitch slows horizontal travel. Speed is
// applied as given; scaling by frame time is the caller's job.
func (c *Rig) Move(dir Direction, speed float32) {
	frontHorizontal := mgl32.Vec3{c.front.X(), 0, c.front.Z()}

	switch dir {
	case Forward:
		c.position = c.position.Sub(frontHorizontal.Mul(speed))
	case Backward:
		c.position = c.position.Add(frontHorizontal.Mul(speed))
	case Left:
		c.position = c.position.Add(c.right.Mul(speed))
	case Right:
		c.position = c.position.Sub(c.right.Mul(speed))
	}
}

// Rotate rebuilds the basis from absolute pitch and yaw angles in degrees.
// Yaw turns about world Y, then pitch about world X. The caller clamps pitch
// to (-89, 89); the rig does not.
func (c *Rig) Rotate(pitch, yaw float32) {
	rotation := mgl32.HomogRotate3DY(mgl32.DegToRad(yaw)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(pitch)))

	c.front = rotation.Mul4x1(backward).Vec3().Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front)
}

// Projection returns the perspective matrix for a width x height drawable.
// A zero height is treated as 1 so a minimized window never divides by zero.
func Projection(fovDegrees float32, width, height int32, near, far float32) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), float32(width)/float32(height), near, far)
}
