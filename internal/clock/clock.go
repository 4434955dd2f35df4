package clock

import (
	"time"

	rclock "github.com/raulk/clock"
)

// Clock is a millisecond time source with the Arduino millis()/delay() shape.
// Timer code under test takes a Clock instead of reading real time directly.
type Clock interface {
	// Millis returns milliseconds since the clock's origin, wrapping at 2^32.
	Millis() uint32

	// Delay blocks (real) or advances (simulated) for ms milliseconds.
	Delay(ms uint32)
}

// RealClock implements Clock on top of a wall-clock source
type RealClock struct {
	base  rclock.Clock
	epoch time.Time
}

// NewReal returns a RealClock whose origin is the base clock's current time.
// A nil base uses actual system time.
func NewReal(base rclock.Clock) *RealClock {
	if base == nil {
		base = rclock.New()
	}
	return &RealClock{
		base:  base,
		epoch: base.Now(),
	}
}

// Millis returns the wall-clock milliseconds elapsed since NewReal
func (c *RealClock) Millis() uint32 {
	return uint32(c.base.Now().Sub(c.epoch).Milliseconds())
}

// Delay sleeps for ms milliseconds
func (c *RealClock) Delay(ms uint32) {
	c.base.Sleep(time.Duration(ms) * time.Millisecond)
}
