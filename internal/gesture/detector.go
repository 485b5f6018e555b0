package gesture

import (
	"time"

	"go.uber.org/zap"
)

// DefaultGracePeriod is the window in which the second release of a pair
// still counts as pressed together
const DefaultGracePeriod = 500 * time.Millisecond

// Detector classifies polled samples of two buttons into gestures.
// It is not safe for concurrent use; Poll must be called from one loop.
type Detector struct {
	grace    time.Duration
	clock    Clock
	handlers Handlers
	logger   *zap.SugaredLogger

	state    State
	captured bool
	capture  time.Time
}

// Option configures a Detector
type Option func(*Detector)

// WithClock replaces the system clock, mostly for tests
func WithClock(c Clock) Option {
	return func(d *Detector) {
		d.clock = c
	}
}

// WithLogger sets the logger used for transition tracing
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(d *Detector) {
		d.logger = logger.Named("detector")
	}
}

// NewDetector creates a detector with the given grace period and handlers.
// A non-positive grace period selects DefaultGracePeriod.
func NewDetector(grace time.Duration, handlers Handlers, opts ...Option) *Detector {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	d := &Detector{
		grace:    grace,
		clock:    SystemClock(),
		handlers: handlers,
		logger:   zap.NewNop().Sugar(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// GracePeriod returns the configured grace period
func (d *Detector) GracePeriod() time.Duration {
	return d.grace
}

// Poll feeds one sample into the state machine. When a gesture is accepted
// the matching handler runs before Poll returns, and the gesture is also
// returned with ok set.
func (d *Detector) Poll(alpha, beta bool) (g Gesture, ok bool) {
	in := Sample{Alpha: alpha, Beta: beta}

	t := d.step(in)
	if t.Next.Accepting() {
		// Accepting states commit and return to idle on the same tick.
		t = d.step(in)
	}

	if t.Fired {
		d.logger.Debugw("Gesture accepted", "gesture", t.Gesture)
		d.handlers.dispatch(t.Gesture)
	}
	return t.Gesture, t.Fired
}

func (d *Detector) step(in Sample) Transition {
	var elapsed time.Duration
	if d.captured {
		elapsed = d.clock.Now().Sub(d.capture)
	}

	t := Step(d.state, in, d.captured, elapsed, d.grace)

	if t.Capture {
		d.captured = true
		d.capture = d.clock.Now()
		d.logger.Debugw("Capture timer started", "state", t.Next)
	}
	if t.Next != d.state {
		d.logger.Debugw("Transition", "from", d.state, "to", t.Next, "sample", in, "elapsed", elapsed)
		d.state = t.Next
		if !d.state.Releasing() {
			d.captured = false
			d.capture = time.Time{}
		}
	}
	return t
}
