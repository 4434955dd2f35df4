// Package config loads scenario files for the simtrace tool.
//
// A scenario declares a simulated clock, a set of dummy tasks and an ordered
// list of steps that advance the clock, invoke tasks and check expectations.
// Loading follows the usual order: parse YAML, apply defaults, apply
// environment variable overrides, validate.
//
// Configuration sources (in order of precedence):
//   1. Environment variables (highest priority)
//   2. YAML scenario file
//   3. Default values (lowest priority)
//
// Supported environment variables:
//   - SIMTRACE_LOG_LEVEL: Log level (debug, info, warn, error)
//   - SIMTRACE_START_MILLIS: Initial simulated clock reading
//
// Example scenario file:
//
//	name: three-runs
//	log_level: debug
//	clock:
//	  start_millis: 0
//	tasks:
//	  - name: blink
//	    busy_time: 10
//	    repeats: true   # default
//	steps:
//	  - run: blink
//	  - expect: {returned: true, task: blink, runs: 1, last_run: 0, clock: 10}
//	  - advance: 5
//	  - callback: blink
//	  - dispatch: blink
//	  - reset: blink
//	  - reset_all: true
//	  - noop: true
//
// Every step sets exactly one action. Steps and expectations may only name
// declared tasks, and an expectation on returned must directly follow a step
// that produces a continuation signal.
package config
