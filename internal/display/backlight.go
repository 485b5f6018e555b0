package display

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/pleimann/duo-pad/internal/hid"
)

// Backlight switches the panel light
type Backlight interface {
	On() error
	Off() error
}

// PinBacklight drives the backlight from a GPIO output
type PinBacklight struct {
	pin gpio.PinOut
}

func NewPinBacklight(pin gpio.PinOut) *PinBacklight {
	return &PinBacklight{pin: pin}
}

// OpenPinBacklight resolves the named GPIO line
func OpenPinBacklight(name string) (*PinBacklight, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GPIO host: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("unknown GPIO pin %q for backlight", name)
	}
	return NewPinBacklight(pin), nil
}

func (b *PinBacklight) On() error {
	if err := b.pin.Out(gpio.High); err != nil {
		return fmt.Errorf("failed to switch backlight on: %w", err)
	}
	return nil
}

func (b *PinBacklight) Off() error {
	if err := b.pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("failed to switch backlight off: %w", err)
	}
	return nil
}

// HIDBacklight asks the pad firmware to switch its own backlight
type HIDBacklight struct {
	sink FrameSink
}

func NewHIDBacklight(sink FrameSink) *HIDBacklight {
	return &HIDBacklight{sink: sink}
}

func (b *HIDBacklight) On() error {
	return b.sink.SendFrame(hid.NewBacklightCommand(true))
}

func (b *HIDBacklight) Off() error {
	return b.sink.SendFrame(hid.NewBacklightCommand(false))
}

type noBacklight struct{}

func (noBacklight) On() error { return nil }
func (noBacklight) Off() error { return nil }

// NoBacklight returns a Backlight that does nothing
func NoBacklight() Backlight {
	return noBacklight{}
}
