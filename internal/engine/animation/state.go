package animation

// State groups the animation parameters of every animated prop in the scene.
// The frame loop owns it and is its only writer.
type State struct {
	Cat    *Turntable
	Teapot Bow

	elapsed float64
}

// NewState returns the scene animation state at time zero.
func NewState() *State {
	return &State{Cat: NewTurntable(TurntableRate)}
}

// Advance steps every behaviour by dt seconds. catHeld reports whether the
// cat rotation key is down this frame.
func (s *State) Advance(dt float64, catHeld bool) {
	s.elapsed += dt
	s.Cat.Advance(dt, catHeld)
	s.Teapot.Advance(dt)
}

// Elapsed returns the time accumulated through Advance, in seconds.
func (s *State) Elapsed() float64 { return s.elapsed }

// BroomOffset returns the current levitation offset of the broom.
func (s *State) BroomOffset() float32 { return LevitationOffset(s.elapsed) }

// SpoonAngle returns the current spoon spin in degrees.
func (s *State) SpoonAngle() float32 { return SpinAngle(s.elapsed) }
