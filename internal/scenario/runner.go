// Package scenario replays scripted clock advances and task invocations.
package scenario

import (
	"errors"
	"fmt"

	"github.com/zgpcy/timer-testkit/internal/clock"
	"github.com/zgpcy/timer-testkit/internal/config"
	"github.com/zgpcy/timer-testkit/internal/logger"
	"github.com/zgpcy/timer-testkit/internal/task"
)

var (
	ErrUnknownTask = errors.New("unknown task")
	ErrExpectation = errors.New("expectation failed")
	ErrNoSignal    = errors.New("no continuation signal to check")
	ErrUnknownStep = errors.New("step has no single action")
	ErrAlreadyRun  = errors.New("scenario already run")
)

// Event records the effect of one executed step
type Event struct {
	Index       int
	Action      string
	Task        string
	Amount      uint32 // advance only
	ClockBefore uint32
	ClockAfter  uint32
	Returned    *bool // continuation signal, for steps that invoke a task
}

// Trace is the ordered list of executed steps
type Trace []Event

// ExpectationError reports the first mismatch found by an expect step
type ExpectationError struct {
	Step  int
	Field string
	Task  string
	Got   any
	Want  any
}

func (e *ExpectationError) Error() string {
	if e.Task != "" {
		return fmt.Sprintf("step %d: %s of task %q = %v, want %v", e.Step, e.Field, e.Task, e.Got, e.Want)
	}
	return fmt.Sprintf("step %d: %s = %v, want %v", e.Step, e.Field, e.Got, e.Want)
}

func (e *ExpectationError) Unwrap() error { return ErrExpectation }

// Runner replays a scenario against a simulated clock and a task registry
type Runner struct {
	cfg      *config.Config
	clock    *clock.Simulated
	registry *task.Registry
	logger   *logger.Logger
	done     bool
}

// New builds the clock and tasks a scenario declares
func New(cfg *config.Config, log *logger.Logger) (*Runner, error) {
	clk := clock.NewSimulated(cfg.Clock.StartMillis)
	registry := task.NewRegistry()

	for _, spec := range cfg.Tasks {
		d := task.NewDummy(clk, spec.BusyTime, spec.RepeatsOrDefault())
		if _, err := registry.Add(spec.Name, d); err != nil {
			return nil, fmt.Errorf("failed to register task: %w", err)
		}
	}

	return &Runner{
		cfg:      cfg,
		clock:    clk,
		registry: registry,
		logger:   log.WithFields("scenario", cfg.Name),
	}, nil
}

// Clock returns the scenario's simulated clock
func (r *Runner) Clock() *clock.Simulated { return r.clock }

// Registry returns the scenario's tasks
func (r *Runner) Registry() *task.Registry { return r.registry }

// Run executes every step in order. It stops at the first failing step and
// returns the trace up to and including that step. A Runner runs once.
func (r *Runner) Run() (Trace, error) {
	if r.done {
		return nil, ErrAlreadyRun
	}
	r.done = true

	r.logger.Info("Running scenario",
		"tasks", r.registry.Len(),
		"steps", len(r.cfg.Steps),
		"start_millis", r.clock.Millis())

	var trace Trace
	for i, step := range r.cfg.Steps {
		ev := Event{
			Index:       i,
			Action:      step.Action(),
			Task:        step.TaskName(),
			ClockBefore: r.clock.Millis(),
		}

		err := r.apply(step, &ev, trace)
		ev.ClockAfter = r.clock.Millis()
		trace = append(trace, ev)

		r.logger.Debug("Step executed",
			"step", i,
			"action", ev.Action,
			"task", ev.Task,
			"clock_before", ev.ClockBefore,
			"clock_after", ev.ClockAfter)

		if err != nil {
			r.logger.Error("Scenario step failed", "step", i, "error", err)
			return trace, err
		}
	}

	r.logger.Info("Scenario completed",
		"steps", len(trace),
		"clock_millis", r.clock.Millis(),
		"uptime_millis", r.clock.Uptime())
	return trace, nil
}

func (r *Runner) apply(step config.Step, ev *Event, trace Trace) error {
	switch ev.Action {
	case config.ActionAdvance:
		ev.Amount = *step.Advance
		r.clock.Delay(ev.Amount)

	case config.ActionRun:
		d, _, err := r.lookup(ev.Index, ev.Task)
		if err != nil {
			return err
		}
		ev.Returned = signal(d.Run())

	case config.ActionCallback:
		_, h, err := r.lookup(ev.Index, ev.Task)
		if err != nil {
			return err
		}
		ev.Returned = signal(r.registry.Handler(h)(nil))

	case config.ActionDispatch:
		_, h, err := r.lookup(ev.Index, ev.Task)
		if err != nil {
			return err
		}
		ev.Returned = signal(r.registry.Dispatch(h))

	case config.ActionReset:
		d, _, err := r.lookup(ev.Index, ev.Task)
		if err != nil {
			return err
		}
		d.Reset()

	case config.ActionResetAll:
		r.registry.ResetAll()

	case config.ActionNoOp:
		ev.Returned = signal(task.NoOp(nil))

	case config.ActionExpect:
		return r.check(ev.Index, step.Expect, trace)

	default:
		return fmt.Errorf("step %d: %w", ev.Index, ErrUnknownStep)
	}
	return nil
}

func (r *Runner) check(index int, exp *config.Expect, trace Trace) error {
	if exp.Returned != nil {
		if len(trace) == 0 || trace[len(trace)-1].Returned == nil {
			return fmt.Errorf("step %d: %w", index, ErrNoSignal)
		}
		if got := *trace[len(trace)-1].Returned; got != *exp.Returned {
			return &ExpectationError{Step: index, Field: "returned", Got: got, Want: *exp.Returned}
		}
	}

	if exp.Clock != nil {
		if got := r.clock.Millis(); got != *exp.Clock {
			return &ExpectationError{Step: index, Field: "clock", Got: got, Want: *exp.Clock}
		}
	}

	if exp.Runs == nil && exp.LastRun == nil {
		return nil
	}

	d, _, err := r.lookup(index, exp.Task)
	if err != nil {
		return err
	}
	if exp.Runs != nil && d.NumRuns() != *exp.Runs {
		return &ExpectationError{Step: index, Field: "runs", Task: exp.Task, Got: d.NumRuns(), Want: *exp.Runs}
	}
	if exp.LastRun != nil && d.TimeOfLastRun() != *exp.LastRun {
		return &ExpectationError{Step: index, Field: "last_run", Task: exp.Task, Got: d.TimeOfLastRun(), Want: *exp.LastRun}
	}
	return nil
}

func (r *Runner) lookup(index int, name string) (*task.Dummy, task.Handle, error) {
	h, ok := r.registry.Lookup(name)
	if !ok {
		return nil, 0, fmt.Errorf("step %d: %w %q", index, ErrUnknownTask, name)
	}
	d, _ := r.registry.Get(h)
	return d, h, nil
}

func signal(v bool) *bool {
	return &v
}
