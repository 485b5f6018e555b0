package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pleimann/duo-pad/internal/config"
	"github.com/pleimann/duo-pad/internal/display"
	"github.com/pleimann/duo-pad/internal/gesture"
	"github.com/pleimann/duo-pad/internal/hid"
	"github.com/pleimann/duo-pad/internal/input"
	"github.com/pleimann/duo-pad/internal/menu"
	"github.com/pleimann/duo-pad/internal/runner"
)

type App struct {
	config     *config.Config
	configPath string
	logger     *zap.SugaredLogger
	cancel     context.CancelFunc

	hidDevice      *hid.Device
	hidSampler     *input.HIDSampler
	displayManager *display.Manager
	runner         *runner.Manager
	builder        *menu.Builder
	nav            *menu.NavigationStack
	gestureEngine  *gesture.Engine
	watcher        *config.Watcher

	mu      sync.Mutex
	readErr error
}

func newApp(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, path string, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		config:     cfg,
		configPath: path,
		logger:     logger,
		cancel:     cancel,
	}

	// The pad supplies the buttons and may also host the panel
	if cfg.Input.Source == config.SourceHID {
		device, err := hid.Open(cfg.Input.VendorID, cfg.Input.ProductID, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open HID device: %w", err)
		}
		app.hidDevice = device
	}

	// Initialize button sampler
	var sampler gesture.Sampler
	switch cfg.Input.Source {
	case config.SourceGPIO:
		gpio, err := input.OpenGPIO(cfg.Input, logger)
		if err != nil {
			app.closeDevice()
			return nil, fmt.Errorf("failed to open GPIO buttons: %w", err)
		}
		sampler = gpio
	case config.SourceHID:
		app.hidSampler = input.NewHIDSampler(*cfg.Input.AlphaButton, *cfg.Input.BetaButton)
		sampler = app.hidSampler
	default:
		app.closeDevice()
		return nil, fmt.Errorf("unsupported input source %q", cfg.Input.Source)
	}

	// Initialize display manager
	var sink display.FrameSink
	var backlight display.Backlight
	if cfg.Display.Backend == config.BackendHID {
		sink = app.hidDevice
		backlight = display.NewHIDBacklight(app.hidDevice)
	}
	if cfg.Display.BacklightPin != "" {
		pin, err := display.OpenPinBacklight(cfg.Display.BacklightPin)
		if err != nil {
			app.closeDevice()
			return nil, fmt.Errorf("failed to open backlight pin: %w", err)
		}
		backlight = pin
	}
	app.displayManager = display.NewManager(cfg.Display, sink, backlight, logger)

	// Initialize menu
	app.runner = runner.NewManager(logger)
	app.builder = menu.NewBuilder(app.runner, menu.RowsFor(cfg.Display.Height), logger)
	app.nav = menu.NewNavigationStack(ctx, app.builder.Build(cfg.Menu), app.exit, logger)

	// Initialize gesture engine
	app.gestureEngine = gesture.NewEngine(cfg.Timing, sampler, app.nav.Handlers(), logger)
	app.gestureEngine.OnTick(app.render)

	// Config reload is optional; the menu keeps running without it
	watcher, err := config.NewWatcher(path, cfg, logger)
	if err != nil {
		logger.Warnw("Config reload disabled", "error", err)
	} else {
		watcher.OnReload(func(c *config.Config) {
			app.nav.SetRoot(app.builder.Build(c.Menu))
		})
		app.watcher = watcher
	}

	return app, nil
}

// exit runs when the root menu's Exit is chosen
func (a *App) exit() {
	a.logger.Info("Exit selected")
	a.gestureEngine.SetActive(false)
	a.cancel()
}

// render redraws the panel after a tick if the visible screen changed
func (a *App) render() {
	if !a.nav.NeedsUpdate() {
		return
	}
	if err := a.nav.Render(a.displayManager.Canvas()); err != nil {
		a.logger.Warnw("Failed to render screen", "error", err)
	}
}

func (a *App) Run(ctx context.Context) error {
	defer a.shutdown()

	if err := a.displayManager.Start(); err != nil {
		return fmt.Errorf("failed to start display: %w", err)
	}

	if a.watcher != nil {
		a.watcher.Start()
	}

	// Start reading from HID device
	if a.hidDevice != nil {
		events := make(chan hid.Event, 64)
		go func() {
			defer close(events)
			if err := a.hidDevice.ReadEvents(ctx, events); err != nil && ctx.Err() == nil {
				a.logger.Errorw("HID read error", "error", err)
				a.mu.Lock()
				a.readErr = err
				a.mu.Unlock()
				a.cancel()
			}
		}()

		go a.hidSampler.Run(ctx, events)
	}

	err := a.gestureEngine.Run(ctx)

	a.mu.Lock()
	readErr := a.readErr
	a.mu.Unlock()
	if readErr != nil {
		return fmt.Errorf("HID device disconnected: %w", readErr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) shutdown() {
	a.logger.Debug("Shutting down")
	a.runner.Stop()
	a.displayManager.Stop()
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.closeDevice()
}

func (a *App) closeDevice() {
	if a.hidDevice == nil {
		return
	}
	if err := a.hidDevice.Close(); err != nil {
		a.logger.Warnw("Failed to close HID device", "error", err)
	}
}
