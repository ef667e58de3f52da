package animation

import "time"

// Clock turns wall-clock frame timestamps into per-frame deltas.
type Clock struct {
	// MaxDT caps a single delta in seconds. Zero or less means no cap.
	MaxDT float64

	last time.Time
}

// NewClock starts a clock at now.
func NewClock(now time.Time, maxDT float64) *Clock {
	return &Clock{MaxDT: maxDT, last: now}
}

// Tick returns the seconds elapsed since the previous Tick (or NewClock).
// A clock that goes backwards yields zero.
func (c *Clock) Tick(now time.Time) float64 {
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	if c.MaxDT > 0 && dt > c.MaxDT {
		return c.MaxDT
	}
	return dt
}
