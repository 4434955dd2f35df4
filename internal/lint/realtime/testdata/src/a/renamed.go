package a

import (
	stdtime "time"
)

func ticker() *stdtime.Ticker {
	return stdtime.NewTicker(stdtime.Second) // want `direct use of time\.NewTicker`
}
