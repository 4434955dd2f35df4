package scenario

import (
	"fmt"
	"io"
	"strconv"
)

// String renders the event as one trace line
func (e Event) String() string {
	line := fmt.Sprintf("%3d %-9s", e.Index, e.Action)
	switch {
	case e.Amount > 0:
		line += fmt.Sprintf(" +%d", e.Amount)
	case e.Task != "":
		line += " " + e.Task
	}
	line += fmt.Sprintf("  clock %d -> %d", e.ClockBefore, e.ClockAfter)
	if e.Returned != nil {
		line += "  returned " + strconv.FormatBool(*e.Returned)
	}
	return line
}

// WriteTo writes one line per event to w
func (t Trace) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, ev := range t {
		n, err := fmt.Fprintln(w, ev.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
