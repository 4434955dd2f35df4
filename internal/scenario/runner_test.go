package scenario

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zgpcy/timer-testkit/internal/config"
	"github.com/zgpcy/timer-testkit/internal/logger"
)

func loadRunner(t *testing.T, file string) *Runner {
	t.Helper()
	cfg, err := config.Load(filepath.Join("testdata", file))
	require.NoError(t, err)
	r, err := New(cfg, logger.Discard())
	require.NoError(t, err)
	return r
}

func parseRunner(t *testing.T, yaml string) *Runner {
	t.Helper()
	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)
	r, err := New(cfg, logger.Discard())
	require.NoError(t, err)
	return r
}

func TestRun_ThreeRuns(t *testing.T) {
	r := loadRunner(t, "three_runs.yaml")

	trace, err := r.Run()
	require.NoError(t, err)
	require.Len(t, trace, 10)

	var runs []Event
	for _, ev := range trace {
		if ev.Action == config.ActionRun {
			runs = append(runs, ev)
		}
	}
	require.Len(t, runs, 3)
	for i, ev := range runs {
		assert.Equal(t, uint32(i*10), ev.ClockBefore)
		assert.Equal(t, uint32(i*10+10), ev.ClockAfter)
		require.NotNil(t, ev.Returned)
		assert.True(t, *ev.Returned)
	}

	h, ok := r.Registry().Lookup("busy")
	require.True(t, ok)
	d, _ := r.Registry().Get(h)
	assert.Equal(t, 3, d.NumRuns())
	assert.Equal(t, uint32(20), d.TimeOfLastRun())
	assert.Equal(t, uint32(30), r.Clock().Millis())
}

func TestRun_Rollover(t *testing.T) {
	r := loadRunner(t, "rollover.yaml")

	trace, err := r.Run()
	require.NoError(t, err)
	assert.Len(t, trace, 14)
	assert.Equal(t, uint32(107), r.Clock().Millis())
	assert.Equal(t, uint64(113), r.Clock().Uptime())
}

func TestRun_OnlyOnce(t *testing.T) {
	r := parseRunner(t, "steps: [{advance: 1}]")

	_, err := r.Run()
	require.NoError(t, err)

	_, err = r.Run()
	assert.ErrorIs(t, err, ErrAlreadyRun)
	assert.Equal(t, uint32(1), r.Clock().Millis())
}

func TestRun_ExpectationFailures(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantStep  int
		wantField string
	}{
		{
			name:      "clock",
			yaml:      "steps: [{advance: 5}, {expect: {clock: 4}}]",
			wantStep:  1,
			wantField: "clock",
		},
		{
			name: "runs",
			yaml: `
tasks: [{name: a, busy_time: 1}]
steps: [{run: a}, {run: a}, {expect: {task: a, runs: 1}}]`,
			wantStep:  2,
			wantField: "runs",
		},
		{
			name: "last run",
			yaml: `
tasks: [{name: a, busy_time: 2}]
steps: [{run: a}, {run: a}, {expect: {task: a, last_run: 4}}]`,
			wantStep:  2,
			wantField: "last_run",
		},
		{
			name: "returned",
			yaml: `
tasks: [{name: a, repeats: false}]
steps: [{run: a}, {expect: {returned: true}}]`,
			wantStep:  1,
			wantField: "returned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parseRunner(t, tt.yaml)

			trace, err := r.Run()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrExpectation)

			var expErr *ExpectationError
			require.True(t, errors.As(err, &expErr))
			assert.Equal(t, tt.wantStep, expErr.Step)
			assert.Equal(t, tt.wantField, expErr.Field)
			assert.Len(t, trace, tt.wantStep+1, "trace stops at the failing step")
		})
	}
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	r := parseRunner(t, "steps: [{expect: {clock: 1}}, {advance: 50}]")

	trace, err := r.Run()
	require.Error(t, err)
	assert.Len(t, trace, 1)
	assert.Equal(t, uint32(0), r.Clock().Millis(), "steps after the failure are not executed")
}

func TestRun_UnvalidatedConfig(t *testing.T) {
	advance := uint32(1)
	returned := true
	cfg := &config.Config{
		Name: "hand-built",
		Steps: []config.Step{
			{Advance: &advance},
			{Expect: &config.Expect{Returned: &returned}},
		},
	}
	r, err := New(cfg, logger.Discard())
	require.NoError(t, err)

	_, err = r.Run()
	assert.ErrorIs(t, err, ErrNoSignal)

	cfg = &config.Config{Steps: []config.Step{{Run: "ghost"}}}
	r, err = New(cfg, logger.Discard())
	require.NoError(t, err)
	_, err = r.Run()
	assert.ErrorIs(t, err, ErrUnknownTask)

	cfg = &config.Config{Steps: []config.Step{{}}}
	r, err = New(cfg, logger.Discard())
	require.NoError(t, err)
	_, err = r.Run()
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestNew_DuplicateTask(t *testing.T) {
	cfg := &config.Config{Tasks: []config.TaskSpec{{Name: "a"}, {Name: "a"}}}
	_, err := New(cfg, logger.Discard())
	assert.Error(t, err)
}

func TestRun_LogsSteps(t *testing.T) {
	cfg, err := config.Parse([]byte(`
tasks: [{name: led, busy_time: 3}]
steps: [{run: led}]`))
	require.NoError(t, err)

	var buf bytes.Buffer
	r, err := New(cfg, logger.NewWithWriter(&buf, "debug"))
	require.NoError(t, err)

	_, err = r.Run()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"Step executed"`)
	assert.Contains(t, out, `"task":"led"`)
	assert.Contains(t, out, `"msg":"Scenario completed"`)
}

func TestTrace_WriteTo(t *testing.T) {
	r := parseRunner(t, `
tasks: [{name: led, busy_time: 3, repeats: false}]
steps: [{advance: 2}, {run: led}, {noop: true}]`)

	trace, err := r.Run()
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = trace.WriteTo(&buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "advance")
	assert.Contains(t, lines[0], "+2")
	assert.Contains(t, lines[1], "led")
	assert.Contains(t, lines[1], "clock 2 -> 5")
	assert.Contains(t, lines[1], "returned false")
	assert.Contains(t, lines[2], "noop")
}
