package input

import (
	"sync"

	"github.com/pleimann/duo-pad/internal/gesture"
)

// Manual is a sampler whose levels are set by hand, used by the terminal
// simulator
type Manual struct {
	mu     sync.Mutex
	sample gesture.Sample
}

// Set replaces both levels
func (m *Manual) Set(alpha, beta bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sample = gesture.Sample{Alpha: alpha, Beta: beta}
}

// ToggleAlpha flips α and returns the new level
func (m *Manual) ToggleAlpha() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sample.Alpha = !m.sample.Alpha
	return m.sample.Alpha
}

// ToggleBeta flips β and returns the new level
func (m *Manual) ToggleBeta() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sample.Beta = !m.sample.Beta
	return m.sample.Beta
}

func (m *Manual) Sample() (gesture.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sample, nil
}

// Script replays a fixed sequence of samples, one per call, then keeps
// returning the last one
type Script struct {
	samples []gesture.Sample
	pos     int
}

func NewScript(samples ...gesture.Sample) *Script {
	return &Script{samples: samples}
}

func (s *Script) Sample() (gesture.Sample, error) {
	if len(s.samples) == 0 {
		return gesture.Sample{}, nil
	}
	next := s.samples[s.pos]
	if s.pos < len(s.samples)-1 {
		s.pos++
	}
	return next, nil
}

// Done reports whether the last sample has been handed out
func (s *Script) Done() bool {
	return len(s.samples) == 0 || s.pos == len(s.samples)-1
}
