package input

import (
	"context"
	"sync/atomic"

	"github.com/pleimann/duo-pad/internal/gesture"
	"github.com/pleimann/duo-pad/internal/hid"
)

// HIDSampler exposes two buttons of a HID pad as a sampler. The pad pushes
// reports; the sampler keeps the latest held mask for the poll loop.
type HIDSampler struct {
	alpha int
	beta  int
	mask  atomic.Uint32
}

// NewHIDSampler maps the given button indices to α and β
func NewHIDSampler(alpha, beta int) *HIDSampler {
	return &HIDSampler{alpha: alpha, beta: beta}
}

// Apply records the held mask carried by a report
func (s *HIDSampler) Apply(e hid.Event) {
	s.mask.Store(uint32(e.ButtonMask))
}

// Run applies reports from events until the channel closes or ctx is done
func (s *HIDSampler) Run(ctx context.Context, events <-chan hid.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			s.Apply(e)
		}
	}
}

// Sample returns the state of the mapped buttons as of the last report
func (s *HIDSampler) Sample() (gesture.Sample, error) {
	e := hid.Event{ButtonMask: uint16(s.mask.Load())}
	return gesture.Sample{
		Alpha: e.Held(s.alpha),
		Beta:  e.Held(s.beta),
	}, nil
}
