package menu

import (
	"slices"

	"github.com/pleimann/duo-pad/internal/display"
)

// CommandScreen runs a command when opened and shows the tail of its
// output. Both stops the command if it is still running and closes the screen.
type CommandScreen struct {
	dirtyFlag

	title   string
	command string
	args    []string
	runner  Runner
	rows    int

	err     error
	shown   []string
	running bool
}

// NewCommandScreen creates the screen; rows is the number of panel lines
func NewCommandScreen(title, command string, args []string, runner Runner, rows int) *CommandScreen {
	return &CommandScreen{
		dirtyFlag: dirtyFlag{dirty: true},
		title:     title,
		command:   command,
		args:      args,
		runner:    runner,
		rows:      max(rows, 2),
	}
}

func (s *CommandScreen) Title() string {
	return s.title
}

// Enter starts the command
func (s *CommandScreen) Enter(nav *NavigationStack) {
	s.err = s.runner.Start(nav.Context(), s.command, s.args...)
	if s.err != nil {
		nav.logger.Warnw("Failed to start command", "title", s.title, "command", s.command, "error", s.err)
	}
	s.dirty = true
}

// outputRows leaves room for the title and the status line
func (s *CommandScreen) outputRows() int {
	return max(s.rows-2, 1)
}

// NeedsUpdate also reports new output or a change in running state
func (s *CommandScreen) NeedsUpdate() bool {
	if s.dirty {
		return true
	}
	if s.runner.Running() != s.running {
		return true
	}
	return !slices.Equal(s.runner.LastLines(s.outputRows()), s.shown)
}

func (s *CommandScreen) Render(c display.Canvas) error {
	s.dirty = false
	s.running = s.runner.Running()
	s.shown = s.runner.LastLines(s.outputRows())

	c.Blank()
	c.PrintLine(s.title, display.ColorDim, false)
	for _, line := range s.shown {
		c.PrintLine(line, display.ColorWhite, false)
	}
	c.PrintLine(s.status(), display.ColorDim, false)

	return c.Commit()
}

func (s *CommandScreen) status() string {
	switch {
	case s.err != nil:
		return "failed: " + s.err.Error()
	case s.running:
		return "running"
	default:
		return "done"
	}
}

func (s *CommandScreen) OnFirst(*NavigationStack) {}

func (s *CommandScreen) OnSecond(*NavigationStack) {}

func (s *CommandScreen) OnBoth(nav *NavigationStack) {
	if s.runner.Running() {
		s.runner.Stop()
	}
	nav.Pop()
}
