package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/pleimann/duo-pad/internal/config"
	"github.com/pleimann/duo-pad/internal/gesture"
	"github.com/pleimann/duo-pad/internal/input"
	"github.com/pleimann/duo-pad/internal/menu"
)

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Simulator drives the menu from the keyboard: a and b toggle the two
// buttons, space holds both, x releases both
type Simulator struct {
	ctx     context.Context
	engine  *gesture.Engine
	buttons *input.Manual
	nav     *menu.NavigationStack
	canvas  *TextCanvas
	logger  *zap.SugaredLogger

	last      gesture.Gesture
	fired     int
	renderErr error
}

// NewSimulator wires a keyboard sampler and a text canvas to nav. The
// simulator quits when ctx is cancelled, which is how the menu's exit reaches it.
func NewSimulator(ctx context.Context, cfg *config.Config, nav *menu.NavigationStack, logger *zap.SugaredLogger) *Simulator {
	s := &Simulator{
		ctx:     ctx,
		buttons: &input.Manual{},
		nav:     nav,
		canvas:  NewTextCanvas(cfg.Display.Width, cfg.Display.Height, menu.RowsFor(cfg.Display.Height)),
		logger:  logger.Named("simulator"),
	}

	handlers := nav.Handlers()
	s.engine = gesture.NewEngine(cfg.Timing, s.buttons, gesture.Handlers{
		OnFirst:  s.observe(gesture.GestureFirst, handlers.OnFirst),
		OnSecond: s.observe(gesture.GestureSecond, handlers.OnSecond),
		OnBoth:   s.observe(gesture.GestureBoth, handlers.OnBoth),
	}, logger)
	s.engine.OnTick(s.render)

	return s
}

func (s *Simulator) observe(g gesture.Gesture, next func()) func() {
	return func() {
		s.last = g
		s.fired++
		next()
	}
}

func (s *Simulator) render() {
	if !s.nav.NeedsUpdate() {
		return
	}
	s.renderErr = s.nav.Render(s.canvas)
}

// Run starts the terminal program and blocks until it quits
func (s *Simulator) Run() error {
	s.logger.Debugw("Simulator started", "pollInterval", s.engine.Interval(), "root", s.nav.Top().Title())
	s.render()

	_, err := tea.NewProgram(simulatorModel{s}, tea.WithAltScreen()).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("simulator failed: %w", err)
	}
	return nil
}

type simulatorModel struct {
	sim *Simulator
}

func (m simulatorModel) Init() tea.Cmd {
	return tick(m.sim.engine.Interval())
}

func (m simulatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "a":
			m.sim.buttons.ToggleAlpha()
		case "b":
			m.sim.buttons.ToggleBeta()
		case " ":
			m.sim.buttons.Set(true, true)
		case "x":
			m.sim.buttons.Set(false, false)
		}

	case tickMsg:
		if m.sim.ctx.Err() != nil {
			return m, tea.Quit
		}
		m.sim.engine.Tick()
		return m, tick(m.sim.engine.Interval())
	}

	return m, nil
}

func (m simulatorModel) View() string {
	s := m.sim
	sample, _ := s.buttons.Sample()

	status := fmt.Sprintf("%s  %s", buttonView("A", sample.Alpha), buttonView("B", sample.Beta))
	if s.fired > 0 {
		status += "  " + Muted("last gesture:") + " " + Bold(s.last.String())
	}

	view := s.canvas.String() + "\n" + status + "\n"
	if s.renderErr != nil {
		view += Error(s.renderErr.Error()) + "\n"
	}
	return view + Muted("a/b toggle button · space hold both · x release both · q quit") + "\n"
}

func buttonView(label string, held bool) string {
	if held {
		return ButtonDownStyle.Render(label)
	}
	return ButtonUpStyle.Render(label)
}
