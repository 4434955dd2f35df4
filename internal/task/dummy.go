package task

import (
	"fmt"

	"github.com/zgpcy/timer-testkit/internal/clock"
)

// Handler is the callback shape a timer library registers: it receives the
// context argument given at registration and reports whether it wants to be
// called again.
type Handler func(arg any) bool

// Dummy is an instrumented stand-in for scheduled work. Each Run reads the
// injected clock, consumes BusyTime milliseconds of it and counts itself.
//
// A Dummy is not safe for concurrent use.
type Dummy struct {
	clock    clock.Clock
	busyTime uint32
	repeat   bool

	numRuns       int
	timeOfLastRun uint32
}

// NewDummy creates a task that takes runTime milliseconds per run and always
// answers repeats when asked whether to continue.
func NewDummy(clk clock.Clock, runTime uint32, repeats bool) *Dummy {
	d := &Dummy{
		clock:    clk,
		busyTime: runTime,
		repeat:   repeats,
	}
	d.Reset()
	return d
}

// Run records the start time, consumes the busy time and returns the
// continuation signal.
func (d *Dummy) Run() bool {
	d.timeOfLastRun = d.clock.Millis()
	d.clock.Delay(d.busyTime)
	d.numRuns++
	return d.repeat
}

// Callback returns a Handler bound to d. The context argument is ignored.
func (d *Dummy) Callback() Handler {
	return func(any) bool {
		return d.Run()
	}
}

// RunTask is the context-argument form of Run for schedulers that register a
// plain function plus an argument. arg must be a *Dummy; anything else is a
// programming error and panics.
func RunTask(arg any) bool {
	d, ok := arg.(*Dummy)
	if !ok || d == nil {
		panic(fmt.Sprintf("task: RunTask called with %T, want non-nil *task.Dummy", arg))
	}
	return d.Run()
}

// Reset clears the run count and last-run time.
func (d *Dummy) Reset() {
	d.timeOfLastRun = 0
	d.numRuns = 0
}

// NumRuns returns the number of runs since construction or the last Reset.
func (d *Dummy) NumRuns() int { return d.numRuns }

// TimeOfLastRun returns the clock reading taken at the start of the last run,
// or 0 if the task has not run.
func (d *Dummy) TimeOfLastRun() uint32 { return d.timeOfLastRun }

func (d *Dummy) BusyTime() uint32 { return d.busyTime }

func (d *Dummy) Repeats() bool { return d.repeat }

// NoOp is an inert task: it ignores arg and never asks to be repeated.
func NoOp(any) bool {
	return false
}

var (
	_ Handler = RunTask
	_ Handler = NoOp
)
