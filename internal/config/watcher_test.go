package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "menu:\n  title: Before\n")
	initial, err := Load(path)
	require.NoError(t, err)

	w, err := NewWatcher(path, initial, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer w.Stop()

	reloaded := make(chan *Config, 4)
	w.OnReload(func(cfg *Config) { reloaded <- cfg })
	w.Start()

	assert.Equal(t, "Before", w.Get().Menu.Title)

	require.NoError(t, os.WriteFile(path, []byte("menu:\n  title: After\n"), 0644))

	// WriteFile truncates first, so an intermediate empty reload may arrive.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.Menu.Title != "After" {
				continue
			}
			assert.Equal(t, "After", w.Get().Menu.Title)
			return
		case <-deadline:
			t.Fatal("config was not reloaded")
		}
	}
}

func TestWatcherKeepsConfigOnInvalidReload(t *testing.T) {
	path := writeConfig(t, "menu:\n  title: Good\n")
	initial, err := Load(path)
	require.NoError(t, err)

	w, err := NewWatcher(path, initial, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer w.Stop()

	w.reload() // unchanged file reloads cleanly
	require.NoError(t, os.WriteFile(path, []byte("input:\n  source: bogus\n"), 0644))
	w.reload()

	assert.Equal(t, "Good", w.Get().Menu.Title)
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	path := writeConfig(t, "")
	w, err := NewWatcher(path, nil, zap.NewNop().Sugar())
	require.NoError(t, err)

	w.Start()
	w.Stop()
	assert.NotPanics(t, w.Stop)
}

func TestNewWatcherMissingFile(t *testing.T) {
	_, err := NewWatcher("/nonexistent/config.yaml", nil, zap.NewNop().Sugar())
	assert.Error(t, err)
}
