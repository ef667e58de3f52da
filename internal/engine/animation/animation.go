// Package animation drives the procedural motion of animated scene props.
package animation

import "math"

const (
	// LevitationFrequency is the angular frequency of the broom bob in rad/s.
	LevitationFrequency = 0.8
	// LevitationAmplitudeDivisor scales the bob down to scene units.
	LevitationAmplitudeDivisor = 22.0

	// SpinRate is the spoon spin in degrees per second.
	SpinRate = 100.0

	// TurntableRate is the default cat rotation in degrees per second.
	TurntableRate = 180.0

	// BowPhaseRate is how fast the bow phase advances per second.
	BowPhaseRate = 0.8
)

// bowEpsilon absorbs float rounding so that advancing by exactly pi/BowPhaseRate
// completes a bow in a single step.
const bowEpsilon = 1e-6

// LevitationOffset returns the vertical broom offset at time t (seconds).
func LevitationOffset(t float64) float32 {
	return float32(math.Sin(LevitationFrequency*t) / LevitationAmplitudeDivisor)
}

// SpinAngle returns the spoon angle in degrees at time t (seconds).
// The value is unbounded; callers feed it to a rotation that wraps naturally.
func SpinAngle(t float64) float32 {
	return float32(SpinRate * t)
}

// Turntable accumulates a rotation angle while a hold key is down.
type Turntable struct {
	Rate  float64 // degrees per second
	angle float64
}

// NewTurntable returns a turntable at zero degrees spinning at rate deg/s.
func NewTurntable(rate float64) *Turntable {
	return &Turntable{Rate: rate}
}

// Advance turns the table by -Rate*dt when held. The angle stays in (-360, 360].
func (t *Turntable) Advance(dt float64, held bool) {
	if !held {
		return
	}
	t.angle -= t.Rate * dt
	t.angle = wrapDegrees(t.angle)
}

// Angle returns the current angle in degrees.
func (t *Turntable) Angle() float32 {
	return float32(t.angle)
}

// wrapDegrees folds a into (-360, 360]; math.Mod keeps the sign of a.
func wrapDegrees(a float64) float64 {
	return math.Mod(a, 360)
}
