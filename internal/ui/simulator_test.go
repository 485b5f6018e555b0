package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pleimann/duo-pad/internal/config"
	"github.com/pleimann/duo-pad/internal/display"
	"github.com/pleimann/duo-pad/internal/gesture"
	"github.com/pleimann/duo-pad/internal/menu"
)

func TestTextCanvas(t *testing.T) {
	c := NewTextCanvas(70, 56, 3)

	c.Blank()
	c.PrintLine("Title", display.ColorDim, false)
	c.PrintLine("a line longer than ten", display.ColorWhite, true)
	c.PrintLine("x", display.ColorWhite, false)
	c.PrintLine("dropped", display.ColorWhite, false)

	// nothing shows before Commit
	assert.NotContains(t, c.String(), "Title")

	require.NoError(t, c.Commit())
	out := c.String()
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "a line lon")
	assert.NotContains(t, out, "a line long")
	assert.NotContains(t, out, "dropped")
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestSimulator(t *testing.T, ctx context.Context) (*Simulator, *menu.Menu, *int) {
	t.Helper()
	runs := new(int)
	root := menu.NewMenu("Main", 0,
		&menu.Action{Label: "One", Run: func(*menu.NavigationStack) { *runs++ }},
		&menu.Action{Label: "Two", Run: func(*menu.NavigationStack) { *runs++ }},
	)
	nav := menu.NewNavigationStack(ctx, root, nil, zap.NewNop().Sugar())
	cfg := &config.Config{
		Timing:  config.TimingConfig{GracePeriodMs: 500, PollIntervalMs: 16},
		Display: config.DisplayConfig{Width: 240, Height: 135},
	}
	return NewSimulator(ctx, cfg, nav, zap.NewNop().Sugar()), root, runs
}

func TestSimulatorDrivesMenu(t *testing.T) {
	sim, root, runs := newTestSimulator(t, context.Background())
	var m tea.Model = simulatorModel{sim}
	step := func(msg tea.Msg) {
		m, _ = m.Update(msg)
	}
	now := tickMsg(time.Now())

	// tap b
	step(key("b"))
	step(now)
	step(key("b"))
	step(now)
	assert.Equal(t, 1, root.Selected())
	assert.Equal(t, gesture.GestureSecond, sim.last)

	// tap a
	step(key("a"))
	step(now)
	step(key("a"))
	step(now)
	assert.Equal(t, 0, root.Selected())

	// hold both, release both
	step(key(" "))
	step(now)
	step(key("x"))
	step(now)
	assert.Equal(t, 1, *runs)
	assert.Equal(t, gesture.GestureBoth, sim.last)
	assert.Equal(t, 3, sim.fired)

	view := m.View()
	assert.Contains(t, view, "Main")
	assert.Contains(t, view, "last gesture:")
}

func TestSimulatorQuits(t *testing.T) {
	sim, _, _ := newTestSimulator(t, context.Background())
	m := simulatorModel{sim}

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSimulatorQuitsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sim, _, _ := newTestSimulator(t, ctx)
	m := simulatorModel{sim}
	cancel()

	_, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSimulatorRendersOnlyWhenDirty(t *testing.T) {
	sim, _, _ := newTestSimulator(t, context.Background())

	sim.render()
	first := sim.canvas.String()
	assert.True(t, strings.Contains(first, "Exit"))
	assert.False(t, sim.nav.NeedsUpdate())

	sim.engine.Tick()
	assert.Equal(t, first, sim.canvas.String())
}
