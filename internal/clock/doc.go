// Package clock provides the millisecond time source used by timer code and
// its tests.
//
// Clock mirrors the Arduino pair millis()/delay(). Production code gets a
// RealClock; tests get a Simulated clock that only moves when Delay is
// called, so a test that "waits" a minute finishes instantly and always sees
// the same readings.
//
// Each test builds its own Simulated clock and passes it to everything that
// needs time, so tests stay isolated and may run in parallel:
//
//	clk := clock.NewSimulated(0)
//	blink := task.NewDummy(clk, 10, true)
//	blink.Run()
//	clk.Millis() // 10
//
// Millis is a 32-bit reading and wraps like the hardware counter. Start a
// clock near math.MaxUint32 to exercise rollover handling; Uptime keeps the
// full 64-bit total.
package clock
