package a

import "time"

func now() time.Time {
	return time.Now() // want `direct use of time\.Now`
}

func wait() {
	time.Sleep(5 * time.Millisecond) // want `direct use of time\.Sleep`
}

func elapsed(start time.Time) time.Duration {
	return time.Since(start) // want `direct use of time\.Since`
}

func timers() {
	t := time.NewTimer(time.Second) // want `direct use of time\.NewTimer`
	t.Stop()
	<-time.After(time.Second) // want `direct use of time\.After`
}

func reference() func() time.Time {
	return time.Now // want `direct use of time\.Now`
}

func allowed(t time.Time) time.Duration {
	d := 3 * time.Second
	_ = time.Unix(0, 0)
	_ = time.Duration(5).Milliseconds()
	_ = t.After(t)
	return t.Sub(t) + d
}
