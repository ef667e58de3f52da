package animation

import "math"

// BowState is the state of the teapot bow.
type BowState int

const (
	Idle BowState = iota
	Bowing
)

func (s BowState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Bowing:
		return "bowing"
	default:
		return "unknown"
	}
}

// Bow is the triggered teapot bow. One cycle tilts the pot forward and back
// over half a sine period, then returns to Idle with a zero angle.
type Bow struct {
	state BowState
	phase float64
	angle float64
}

// State returns the current state.
func (b *Bow) State() BowState { return b.state }

// Phase returns the sine phase of the running bow; zero while idle.
func (b *Bow) Phase() float64 { return b.phase }

// Angle returns the tilt in radians; always zero while idle.
func (b *Bow) Angle() float32 { return float32(b.angle) }

// Trigger starts a bow. It is a no-op while a bow is already running.
func (b *Bow) Trigger() bool {
	if b.state == Bowing {
		return false
	}
	b.state = Bowing
	b.phase = 0
	b.angle = 0
	return true
}

// Advance moves a running bow forward by dt seconds.
func (b *Bow) Advance(dt float64) {
	if b.state != Bowing {
		return
	}
	b.phase += dt * BowPhaseRate
	if b.phase+bowEpsilon >= math.Pi {
		b.state = Idle
		b.phase = 0
		b.angle = 0
		return
	}
	b.angle = math.Sin(b.phase) / 2
}
