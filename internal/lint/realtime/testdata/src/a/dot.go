package a

import . "time"

func later(f func()) *Timer {
	return AfterFunc(Second, f) // want `direct use of time\.AfterFunc`
}
