package gesture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pleimann/duo-pad/internal/config"
)

type stubSampler struct {
	samples []Sample
	err     error
	reads   int
}

func (s *stubSampler) Sample() (Sample, error) {
	s.reads++
	if s.err != nil {
		return Sample{}, s.err
	}
	if len(s.samples) == 0 {
		return Sample{}, nil
	}
	next := s.samples[0]
	if len(s.samples) > 1 {
		s.samples = s.samples[1:]
	}
	return next, nil
}

func TestEngineDefaults(t *testing.T) {
	e := NewEngine(config.TimingConfig{}, &stubSampler{}, Handlers{}, zap.NewNop().Sugar())

	assert.Equal(t, DefaultPollInterval, e.Interval())
	assert.Equal(t, DefaultGracePeriod, e.detector.GracePeriod())
	assert.True(t, e.Active())
}

func TestEngineTickFeedsDetector(t *testing.T) {
	sampler := &stubSampler{samples: []Sample{alpha, alpha, none}}
	var got counts
	e := NewEngine(config.TimingConfig{GracePeriodMs: 300, PollIntervalMs: 10}, sampler, got.handlers(), zap.NewNop().Sugar())

	ticks := 0
	e.OnTick(func() { ticks++ })

	for i := 0; i < 3; i++ {
		e.Tick()
	}

	assert.Equal(t, counts{first: 1}, got)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 300*time.Millisecond, e.detector.GracePeriod())
}

func TestEngineInactiveSkipsSampling(t *testing.T) {
	sampler := &stubSampler{samples: []Sample{both}}
	e := NewEngine(config.TimingConfig{}, sampler, Handlers{}, zap.NewNop().Sugar())

	ticks := 0
	e.OnTick(func() { ticks++ })

	e.SetActive(false)
	e.Tick()
	e.Tick()

	assert.Equal(t, 0, sampler.reads)
	assert.Equal(t, 2, ticks, "after-tick hook runs while inactive")
	assert.Equal(t, StateIdle, e.detector.state)

	e.SetActive(true)
	e.Tick()
	assert.Equal(t, 1, sampler.reads)
	assert.Equal(t, StateBothHeld, e.detector.state)
}

func TestEngineSampleErrorSkipsTick(t *testing.T) {
	sampler := &stubSampler{err: errors.New("bus fault")}
	e := NewEngine(config.TimingConfig{}, sampler, Handlers{}, zap.NewNop().Sugar())

	assert.NotPanics(t, e.Tick)
	assert.Equal(t, StateIdle, e.detector.state)
}

func TestEngineRunStopsOnCancel(t *testing.T) {
	sampler := &stubSampler{}
	e := NewEngine(config.TimingConfig{PollIntervalMs: 1}, sampler, Handlers{}, zap.NewNop().Sugar())

	ticked := make(chan struct{}, 1)
	e.OnTick(func() {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("engine never ticked")
	}

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not stop")
	}
}
