// Package task provides instrumented dummy tasks for testing timer libraries.
//
// A Dummy records how often it ran and when its last run started, consumes a
// fixed amount of simulated time per run and always returns the same
// continuation signal. NoOp is the inert counterpart. Registry owns named
// tasks and gives out Handles for schedulers that pass a context argument to
// their callbacks.
package task
