package gesture

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pleimann/duo-pad/internal/config"
)

// DefaultPollInterval is roughly 60Hz
const DefaultPollInterval = 16 * time.Millisecond

// Engine drives a Detector from a Sampler at a fixed cadence
type Engine struct {
	detector *Detector
	sampler  Sampler
	interval time.Duration
	logger   *zap.SugaredLogger

	active    atomic.Bool
	afterTick func()
}

// NewEngine creates a gesture engine polling sampler with the configured timing
func NewEngine(timing config.TimingConfig, sampler Sampler, handlers Handlers, logger *zap.SugaredLogger) *Engine {
	logger = logger.Named("gesture")

	interval := time.Duration(timing.PollIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	e := &Engine{
		detector: NewDetector(
			time.Duration(timing.GracePeriodMs)*time.Millisecond,
			handlers,
			WithLogger(logger),
		),
		sampler:  sampler,
		interval: interval,
		logger:   logger,
	}
	e.active.Store(true)

	return e
}

// OnTick registers a hook run after every tick, active or not.
// The render step of the outer loop hangs off this.
func (e *Engine) OnTick(fn func()) {
	e.afterTick = fn
}

// SetActive suspends or resumes polling. While inactive the sampler is not
// read and the detector keeps whatever state it was in.
func (e *Engine) SetActive(active bool) {
	if e.active.Swap(active) != active {
		e.logger.Debugw("Polling toggled", "active", active)
	}
}

// Active reports whether the engine is currently polling
func (e *Engine) Active() bool {
	return e.active.Load()
}

// Interval returns the poll cadence
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// Tick performs one poll iteration
func (e *Engine) Tick() {
	if e.active.Load() {
		sample, err := e.sampler.Sample()
		if err != nil {
			e.logger.Warnw("Failed to sample buttons", "error", err)
		} else {
			e.detector.Poll(sample.Alpha, sample.Beta)
		}
	}

	if e.afterTick != nil {
		e.afterTick()
	}
}

// Run polls until ctx is cancelled
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.logger.Infow("Gesture engine started",
		"pollInterval", e.interval,
		"gracePeriod", e.detector.GracePeriod())

	for {
		select {
		case <-ctx.Done():
			e.logger.Debug("Gesture engine stopped")
			return ctx.Err()
		case <-ticker.C:
			e.Tick()
		}
	}
}
