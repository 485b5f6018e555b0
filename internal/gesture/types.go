package gesture

import (
	"fmt"
)

// Gesture is one of the three gestures recognized from a pair of buttons
type Gesture int

const (
	GestureFirst Gesture = iota
	GestureSecond
	GestureBoth
)

func (g Gesture) String() string {
	switch g {
	case GestureFirst:
		return "first"
	case GestureSecond:
		return "second"
	case GestureBoth:
		return "both"
	default:
		return fmt.Sprintf("unknown(%d)", int(g))
	}
}

// Sample is the instantaneous pressed state of both buttons for one poll tick.
// Polarity is already normalized: true always means pressed.
type Sample struct {
	Alpha bool
	Beta  bool
}

func (s Sample) String() string {
	return fmt.Sprintf("(%d,%d)", bit(s.Alpha), bit(s.Beta))
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Sampler reads the current state of both buttons
type Sampler interface {
	Sample() (Sample, error)
}

// Handlers holds the callbacks invoked when a gesture is accepted.
// Nil handlers are skipped.
type Handlers struct {
	OnFirst  func()
	OnSecond func()
	OnBoth   func()
}

func (h Handlers) dispatch(g Gesture) {
	var fn func()
	switch g {
	case GestureFirst:
		fn = h.OnFirst
	case GestureSecond:
		fn = h.OnSecond
	case GestureBoth:
		fn = h.OnBoth
	}
	if fn != nil {
		fn()
	}
}
