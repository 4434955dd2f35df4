package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zgpcy/timer-testkit/internal/logger"
)

// Default values
const (
	DefaultLogLevel    = "info"
	DefaultStartMillis = 0
	DefaultRepeats     = true
)

// Step actions
const (
	ActionAdvance  = "advance"
	ActionRun      = "run"
	ActionCallback = "callback"
	ActionDispatch = "dispatch"
	ActionReset    = "reset"
	ActionResetAll = "reset_all"
	ActionNoOp     = "noop"
	ActionExpect   = "expect"
)

// ClockConfig configures the simulated clock
type ClockConfig struct {
	StartMillis uint32 `yaml:"start_millis"`
}

// TaskSpec declares one dummy task
type TaskSpec struct {
	Name     string `yaml:"name"`
	BusyTime uint32 `yaml:"busy_time"` // milliseconds consumed per run
	Repeats  *bool  `yaml:"repeats"`   // Pointer to distinguish between false and unset
}

// Expect holds assertions checked at one point of a scenario. Unset fields
// are not checked.
type Expect struct {
	Clock    *uint32 `yaml:"clock"`
	Task     string  `yaml:"task"`
	Runs     *int    `yaml:"runs"`
	LastRun  *uint32 `yaml:"last_run"`
	Returned *bool   `yaml:"returned"` // continuation signal of the previous step
}

// Step is one scenario action. Exactly one field must be set.
type Step struct {
	Advance  *uint32 `yaml:"advance"`
	Run      string  `yaml:"run"`
	Callback string  `yaml:"callback"`
	Dispatch string  `yaml:"dispatch"`
	Reset    string  `yaml:"reset"`
	ResetAll bool    `yaml:"reset_all"`
	NoOp     bool    `yaml:"noop"`
	Expect   *Expect `yaml:"expect"`
}

// Config represents a scenario file
type Config struct {
	Name     string      `yaml:"name"`
	LogLevel string      `yaml:"log_level"`
	Clock    ClockConfig `yaml:"clock"`
	Tasks    []TaskSpec  `yaml:"tasks"`
	Steps    []Step      `yaml:"steps"`
}

// Load loads a scenario from a YAML file and applies environment variable overrides
func Load(path string) (*Config, error) {
	// #nosec G304 -- Scenario path is provided by the operator via CLI flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return cfg, nil
}

// Parse parses, defaults, overrides and validates scenario YAML
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("environment variable error: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// RepeatsOrDefault returns the configured continuation signal
func (t TaskSpec) RepeatsOrDefault() bool {
	if t.Repeats == nil {
		return DefaultRepeats
	}
	return *t.Repeats
}

// Action returns the name of the single action set on the step, or "" if the
// step sets none or more than one.
func (s Step) Action() string {
	var actions []string
	if s.Advance != nil {
		actions = append(actions, ActionAdvance)
	}
	if s.Run != "" {
		actions = append(actions, ActionRun)
	}
	if s.Callback != "" {
		actions = append(actions, ActionCallback)
	}
	if s.Dispatch != "" {
		actions = append(actions, ActionDispatch)
	}
	if s.Reset != "" {
		actions = append(actions, ActionReset)
	}
	if s.ResetAll {
		actions = append(actions, ActionResetAll)
	}
	if s.NoOp {
		actions = append(actions, ActionNoOp)
	}
	if s.Expect != nil {
		actions = append(actions, ActionExpect)
	}
	if len(actions) != 1 {
		return ""
	}
	return actions[0]
}

// TaskName returns the task a step acts on, if any
func (s Step) TaskName() string {
	switch {
	case s.Run != "":
		return s.Run
	case s.Callback != "":
		return s.Callback
	case s.Dispatch != "":
		return s.Dispatch
	case s.Reset != "":
		return s.Reset
	case s.Expect != nil:
		return s.Expect.Task
	}
	return ""
}

// returnsSignal reports whether the step produces a continuation signal
func (s Step) returnsSignal() bool {
	switch s.Action() {
	case ActionRun, ActionCallback, ActionDispatch, ActionNoOp:
		return true
	}
	return false
}

// applyDefaults sets default values for configuration
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// applyEnvOverrides applies environment variable overrides to configuration
func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv("SIMTRACE_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}

	if val := os.Getenv("SIMTRACE_START_MILLIS"); val != "" {
		ms, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid SIMTRACE_START_MILLIS: must be an unsigned 32-bit integer, got %q", val)
		}
		cfg.Clock.StartMillis = uint32(ms)
	}

	return nil
}

// validate validates the configuration
func validate(cfg *Config) error {
	if !logger.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}

	names := make(map[string]bool, len(cfg.Tasks))
	for i, task := range cfg.Tasks {
		if task.Name == "" {
			return fmt.Errorf("task at index %d has empty name", i)
		}
		if names[task.Name] {
			return fmt.Errorf("task %q declared more than once", task.Name)
		}
		names[task.Name] = true
	}

	if len(cfg.Steps) == 0 {
		return fmt.Errorf("no steps configured")
	}

	for i, step := range cfg.Steps {
		action := step.Action()
		if action == "" {
			return fmt.Errorf("step %d must set exactly one action", i)
		}

		if name := step.TaskName(); name != "" && !names[name] {
			return fmt.Errorf("step %d references unknown task %q", i, name)
		}

		if action != ActionExpect {
			continue
		}

		exp := step.Expect
		if exp.Clock == nil && exp.Runs == nil && exp.LastRun == nil && exp.Returned == nil {
			return fmt.Errorf("step %d: expect has nothing to check", i)
		}
		if (exp.Runs != nil || exp.LastRun != nil) && exp.Task == "" {
			return fmt.Errorf("step %d: expect on runs or last_run needs a task", i)
		}
		if exp.Runs != nil && *exp.Runs < 0 {
			return fmt.Errorf("step %d: runs cannot be negative, got %d", i, *exp.Runs)
		}
		if exp.Returned != nil && (i == 0 || !cfg.Steps[i-1].returnsSignal()) {
			return fmt.Errorf("step %d: expect on returned must follow run, callback, dispatch or noop", i)
		}
	}

	return nil
}
