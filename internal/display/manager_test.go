package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/pleimann/duo-pad/internal/config"
	"github.com/pleimann/duo-pad/internal/hid"
)

var testDisplay = config.DisplayConfig{Backend: config.BackendHID, Width: 16, Height: 8}

func TestManagerLifecycle(t *testing.T) {
	sink := &recordingSink{}
	m := NewManager(testDisplay, sink, NewHIDBacklight(sink), zap.NewNop().Sugar())

	require.IsType(t, &Renderer{}, m.Canvas())

	require.NoError(t, m.Start())
	require.Len(t, sink.frames, 2)
	assert.Equal(t, hid.DisplayCmdClear, sink.frames[0].Command)
	assert.Equal(t, hid.DisplayCmdBacklight, sink.frames[1].Command)
	assert.Equal(t, []byte{1}, sink.frames[1].Data)

	m.Stop()
	require.Len(t, sink.frames, 4)
	assert.Equal(t, hid.DisplayCmdClear, sink.frames[2].Command)
	assert.Equal(t, []byte{0}, sink.frames[3].Data)
}

func TestManagerClearResendsFrame(t *testing.T) {
	sink := &recordingSink{}
	m := NewManager(testDisplay, sink, nil, zap.NewNop().Sugar())
	canvas := m.Canvas()

	canvas.PrintLine("Hi", ColorWhite, false)
	require.NoError(t, canvas.Commit())
	sent := len(sink.frames)

	// the panel was cleared, so an identical frame must go out again
	require.NoError(t, m.Start())
	canvas.PrintLine("Hi", ColorWhite, false)
	require.NoError(t, canvas.Commit())
	assert.Greater(t, len(sink.frames), sent+1)
}

func TestManagerWithoutPanel(t *testing.T) {
	m := NewManager(config.DisplayConfig{Backend: config.BackendNone}, nil, nil, zap.NewNop().Sugar())

	assert.Equal(t, Nop{}, m.Canvas())
	assert.NoError(t, m.Start())
	m.Stop()
}

func TestPinBacklight(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO22", Num: 22}
	b := NewPinBacklight(pin)

	require.NoError(t, b.On())
	assert.Equal(t, gpio.High, pin.Read())

	require.NoError(t, b.Off())
	assert.Equal(t, gpio.Low, pin.Read())
}
