package gesture

import "time"

// Clock is the time source used to measure the capture timer
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the host's monotonic clock
func SystemClock() Clock {
	return systemClock{}
}
