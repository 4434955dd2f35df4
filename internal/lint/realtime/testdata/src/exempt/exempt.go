//simtime:realtime

package exempt

import "time"

func Now() time.Time {
	return time.Now()
}

func Wait(d time.Duration) {
	time.Sleep(d)
}
