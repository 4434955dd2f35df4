// simtimelint reports direct calls to the time package's clock primitives
// in code that should take its time from an injected clock.
//
//	simtimelint ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/zgpcy/timer-testkit/internal/lint/realtime"
)

func main() {
	singlechecker.Main(realtime.Analyzer)
}
