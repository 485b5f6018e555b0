package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches a config file for changes and reloads it
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *zap.SugaredLogger
	mu       sync.RWMutex
	config   *Config
	handlers []func(*Config)
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher seeded with an already loaded config
func NewWatcher(path string, initial *Config, logger *zap.SugaredLogger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := w.Add(path); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	return &Watcher{
		path:    path,
		watcher: w,
		logger:  logger.Named("config"),
		config:  initial,
		done:    make(chan struct{}),
	}, nil
}

// Start starts watching for config file changes
func (w *Watcher) Start() {
	w.logger.Debugw("Watching config file", "path", w.path)
	go w.watch()
}

// Stop stops the config watcher
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}

// OnReload registers a handler to be called when config is reloaded
func (w *Watcher) OnReload(handler func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Get returns the current config
func (w *Watcher) Get() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Some editors save atomically via rename, which shows up as create
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("Config watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warnw("Failed to reload config", "path", w.path, "error", err)
		return
	}

	w.mu.Lock()
	previous := w.config
	w.config = cfg
	handlers := make([]func(*Config), len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	if previous != nil && previous.Timing != cfg.Timing {
		w.logger.Warnw("Timing changes take effect after restart",
			"running", previous.Timing,
			"configured", cfg.Timing)
	}
	if previous != nil && previous.Input.Source != cfg.Input.Source {
		w.logger.Warnw("Input source changes take effect after restart",
			"running", previous.Input.Source,
			"configured", cfg.Input.Source)
	}

	w.logger.Infow("Config reloaded", "path", w.path)

	for _, handler := range handlers {
		handler(cfg)
	}
}
