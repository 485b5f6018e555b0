// Package input provides the button samplers that feed the gesture engine.
package input

import (
	"fmt"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/pleimann/duo-pad/internal/config"
	"github.com/pleimann/duo-pad/internal/gesture"
)

// GPIOSampler reads two buttons wired straight to GPIO lines
type GPIOSampler struct {
	alpha  gpio.PinIn
	beta   gpio.PinIn
	active gpio.Level
}

// NewGPIOSampler configures both pins as inputs. With activeLow the internal
// pull-up is enabled and a low level means pressed.
func NewGPIOSampler(alpha, beta gpio.PinIn, activeLow bool) (*GPIOSampler, error) {
	pull, active := gpio.PullDown, gpio.High
	if activeLow {
		pull, active = gpio.PullUp, gpio.Low
	}

	for _, p := range []gpio.PinIn{alpha, beta} {
		if err := p.In(pull, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("failed to configure %s as input: %w", p, err)
		}
	}

	return &GPIOSampler{alpha: alpha, beta: beta, active: active}, nil
}

// OpenGPIO initializes the host drivers and resolves the configured pins by name
func OpenGPIO(cfg config.InputConfig, logger *zap.SugaredLogger) (*GPIOSampler, error) {
	logger = logger.Named("gpio")

	state, err := host.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GPIO host: %w", err)
	}
	for _, failure := range state.Failed {
		logger.Debugw("Driver failed to load", "driver", failure.D, "error", failure.Err)
	}

	alpha := gpioreg.ByName(cfg.AlphaPin)
	if alpha == nil {
		return nil, fmt.Errorf("unknown GPIO pin %q for alpha", cfg.AlphaPin)
	}
	beta := gpioreg.ByName(cfg.BetaPin)
	if beta == nil {
		return nil, fmt.Errorf("unknown GPIO pin %q for beta", cfg.BetaPin)
	}

	activeLow := cfg.ActiveLow == nil || *cfg.ActiveLow

	s, err := NewGPIOSampler(alpha, beta, activeLow)
	if err != nil {
		return nil, err
	}

	logger.Infow("Buttons configured", "alpha", alpha.Name(), "beta", beta.Name(), "activeLow", activeLow)
	return s, nil
}

// Sample reads both lines
func (s *GPIOSampler) Sample() (gesture.Sample, error) {
	return gesture.Sample{
		Alpha: s.alpha.Read() == s.active,
		Beta:  s.beta.Read() == s.active,
	}, nil
}
