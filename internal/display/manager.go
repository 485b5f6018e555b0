package display

import (
	"go.uber.org/zap"

	"github.com/pleimann/duo-pad/internal/config"
)

// Manager owns the panel: the canvas screens draw on, the backlight, and
// clearing the panel when the program starts and stops
type Manager struct {
	canvas    Canvas
	encoder   *FrameEncoder
	sink      FrameSink
	backlight Backlight
	logger    *zap.SugaredLogger
}

// NewManager creates a display manager. A nil sink selects the Nop canvas.
func NewManager(cfg config.DisplayConfig, sink FrameSink, backlight Backlight, logger *zap.SugaredLogger) *Manager {
	m := &Manager{
		canvas:    Nop{},
		encoder:   NewFrameEncoder(cfg.Width, cfg.Height),
		sink:      sink,
		backlight: backlight,
		logger:    logger.Named("display"),
	}
	if sink != nil {
		m.canvas = NewRenderer(cfg.Width, cfg.Height, sink)
	}
	if m.backlight == nil {
		m.backlight = NoBacklight()
	}
	return m
}

// Canvas returns the surface screens render to
func (m *Manager) Canvas() Canvas {
	return m.canvas
}

// Start clears the panel and switches the backlight on
func (m *Manager) Start() error {
	if err := m.clear(); err != nil {
		return err
	}
	if err := m.backlight.On(); err != nil {
		return err
	}
	m.logger.Debug("Display started")
	return nil
}

// Stop clears the panel and switches the backlight off. Errors are logged
// since the program is already on its way out.
func (m *Manager) Stop() {
	if err := m.clear(); err != nil {
		m.logger.Warnw("Failed to clear display", "error", err)
	}
	if err := m.backlight.Off(); err != nil {
		m.logger.Warnw("Failed to switch backlight off", "error", err)
	}
	m.logger.Debug("Display stopped")
}

func (m *Manager) clear() error {
	m.canvas.Blank()
	if m.sink == nil {
		return nil
	}
	if r, ok := m.canvas.(*Renderer); ok {
		r.Invalidate()
	}
	return m.sink.SendFrame(m.encoder.EncodeClear())
}
