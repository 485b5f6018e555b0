package gesture

import (
	"fmt"
	"time"
)

// State is the current position of the detector's state machine
type State int

const (
	// StateIdle: nothing is pressed.
	StateIdle State = iota
	// StateAlphaHeld: α alone is down.
	StateAlphaHeld
	// StateAlphaAccepting: α was released on its own; first fires.
	StateAlphaAccepting
	// StateBetaHeld: β alone is down.
	StateBetaHeld
	// StateBetaAccepting: β was released on its own; second fires.
	StateBetaAccepting
	// StateBothViaAlphaReleasing: both were held, β has been released and
	// the pair completes when α is released within the grace period.
	StateBothViaAlphaReleasing
	// StateBothHeld: both are down.
	StateBothHeld
	// StateBothViaBetaReleasing mirrors StateBothViaAlphaReleasing.
	StateBothViaBetaReleasing
	// StateBothAccepting: the pair was released together; both fires.
	StateBothAccepting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAlphaHeld:
		return "alpha_held"
	case StateAlphaAccepting:
		return "alpha_accepting"
	case StateBetaHeld:
		return "beta_held"
	case StateBetaAccepting:
		return "beta_accepting"
	case StateBothViaAlphaReleasing:
		return "both_via_alpha_releasing"
	case StateBothHeld:
		return "both_held"
	case StateBothViaBetaReleasing:
		return "both_via_beta_releasing"
	case StateBothAccepting:
		return "both_accepting"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Releasing reports whether the capture timer is live in this state
func (s State) Releasing() bool {
	return s == StateBothViaAlphaReleasing || s == StateBothViaBetaReleasing
}

// Accepting reports whether entering this state commits a gesture
func (s State) Accepting() bool {
	return s == StateAlphaAccepting || s == StateBetaAccepting || s == StateBothAccepting
}

// Transition is the outcome of a single step of the state machine
type Transition struct {
	Next State
	// Capture asks the caller to start the capture timer on this tick.
	Capture bool
	// Fired is set when Gesture was accepted on this step.
	Fired   bool
	Gesture Gesture
}

func stay(s State) Transition {
	return Transition{Next: s}
}

// enterReleasing starts the capture timer on the poll that enters a
// releasing state. That poll does nothing else.
func enterReleasing(s State) Transition {
	return Transition{Next: s, Capture: true}
}

func fire(g Gesture) Transition {
	return Transition{Next: StateIdle, Fired: true, Gesture: g}
}

// Step computes the transition for one poll. It has no side effects.
//
// captured reports whether the capture timer is set and elapsed is the time
// since it was set; both are ignored outside the releasing states.
func Step(cur State, in Sample, captured bool, elapsed, grace time.Duration) Transition {
	switch cur {
	case StateIdle:
		switch {
		case in.Alpha && in.Beta:
			return stay(StateBothHeld)
		case in.Alpha:
			return stay(StateAlphaHeld)
		case in.Beta:
			return stay(StateBetaHeld)
		}
		return stay(StateIdle)

	case StateAlphaHeld:
		switch {
		case in.Alpha && in.Beta:
			return stay(StateBothHeld)
		case !in.Alpha && !in.Beta:
			return stay(StateAlphaAccepting)
		}
		// α held, or α released with β pressed on the same tick: absorbed.
		return stay(StateAlphaHeld)

	case StateBetaHeld:
		switch {
		case in.Alpha && in.Beta:
			return stay(StateBothHeld)
		case !in.Beta:
			return stay(StateBetaAccepting)
		}
		return stay(StateBetaHeld)

	case StateBothHeld:
		switch {
		case in.Alpha && in.Beta:
			return stay(StateBothHeld)
		case in.Alpha:
			return enterReleasing(StateBothViaAlphaReleasing)
		case in.Beta:
			return enterReleasing(StateBothViaBetaReleasing)
		}
		return stay(StateBothAccepting)

	case StateBothViaAlphaReleasing:
		return stepReleasing(cur, StateAlphaHeld, in, captured, elapsed, grace)

	case StateBothViaBetaReleasing:
		return stepReleasing(cur, StateBetaHeld, in, captured, elapsed, grace)

	case StateAlphaAccepting:
		return fire(GestureFirst)

	case StateBetaAccepting:
		return fire(GestureSecond)

	case StateBothAccepting:
		return fire(GestureBoth)
	}

	return stay(cur)
}

// stepReleasing handles both releasing states once the timer runs. The
// timeout is checked before the completing release.
func stepReleasing(cur, fallback State, in Sample, captured bool, elapsed, grace time.Duration) Transition {
	if !captured {
		// Entered without a timer; arm it and wait for the next poll.
		return enterReleasing(cur)
	}
	if elapsed > grace {
		return stay(fallback)
	}
	if !in.Alpha && !in.Beta {
		return stay(StateBothAccepting)
	}
	return stay(cur)
}
