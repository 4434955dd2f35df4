package clock

import "sync/atomic"

// Simulated is a Clock that only moves when Delay is called. Nothing in it
// depends on elapsed wall-clock time, so tests using it run instantly and
// produce the same readings every time.
//
// Millis reports the low 32 bits of start+Uptime, so a clock created near
// math.MaxUint32 rolls over exactly like the 32-bit Arduino counter. Uptime
// never decreases.
type Simulated struct {
	start   uint32
	elapsed atomic.Uint64
}

// NewSimulated returns a simulated clock whose first Millis reading is start.
func NewSimulated(start uint32) *Simulated {
	return &Simulated{start: start}
}

// Millis returns the current simulated reading.
func (s *Simulated) Millis() uint32 {
	return uint32(uint64(s.start) + s.elapsed.Load())
}

// Delay advances the clock by ms. It never blocks.
func (s *Simulated) Delay(ms uint32) {
	s.elapsed.Add(uint64(ms))
}

// Uptime returns the total milliseconds advanced since NewSimulated.
func (s *Simulated) Uptime() uint64 {
	return s.elapsed.Load()
}

var (
	_ Clock = (*Simulated)(nil)
	_ Clock = (*RealClock)(nil)
)
