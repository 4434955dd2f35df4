// Package realtime defines an analyzer that reports direct use of the time
// package's clock primitives.
//
// Timer logic exercised under a simulated clock must read and spend time only
// through an injected clock.Clock. A stray time.Now or time.Sleep still
// compiles and usually still passes, so the mistake is easy to miss. The
// analyzer flags every reference to:
//
//	time.Now  time.Since  time.Until  time.Sleep  time.After
//	time.AfterFunc  time.Tick  time.NewTicker  time.NewTimer
//
// Types, constants and pure conversions (time.Duration, time.Millisecond,
// time.Unix) are not reported. A file that legitimately touches real time
// opts out with a directive comment on its own line:
//
//	//simtime:realtime
package realtime

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Directive exempts the file containing it
const Directive = "//simtime:realtime"

var banned = map[string]bool{
	"Now":       true,
	"Since":     true,
	"Until":     true,
	"Sleep":     true,
	"After":     true,
	"AfterFunc": true,
	"Tick":      true,
	"NewTicker": true,
	"NewTimer":  true,
}

var Analyzer = &analysis.Analyzer{
	Name: "realtime",
	Doc:  "report direct use of real time primitives where an injected clock is expected",
	URL:  "https://github.com/zgpcy/timer-testkit/tree/main/internal/lint/realtime",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	for _, file := range pass.Files {
		if exempt(file) {
			continue
		}

		ast.Inspect(file, func(n ast.Node) bool {
			id, ok := n.(*ast.Ident)
			if !ok {
				return true
			}
			fn, ok := pass.TypesInfo.Uses[id].(*types.Func)
			if !ok || fn.Pkg() == nil || fn.Pkg().Path() != "time" {
				return true
			}
			if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
				return true
			}
			if banned[fn.Name()] {
				pass.Reportf(id.Pos(), "direct use of time.%s; read time from an injected clock.Clock", fn.Name())
			}
			return true
		})
	}
	return nil, nil
}

func exempt(file *ast.File) bool {
	for _, group := range file.Comments {
		for _, c := range group.List {
			if strings.TrimSpace(c.Text) == Directive {
				return true
			}
		}
	}
	return false
}
