// Package menu implements the screens driven by the three gestures: a
// scrolling menu, a value adjuster and a command output view, stacked by a
// NavigationStack.
package menu

import (
	"context"

	"github.com/pleimann/duo-pad/internal/display"
)

// lineHeight is the pixel height of one printed line including spacing
const lineHeight = 14

// Screen is one page of the interface. Gesture callbacks receive the stack
// so a screen can push or pop.
type Screen interface {
	Title() string
	Render(c display.Canvas) error
	NeedsUpdate() bool
	MarkDirty()

	OnFirst(nav *NavigationStack)
	OnSecond(nav *NavigationStack)
	OnBoth(nav *NavigationStack)
}

// Enterer is implemented by screens that act when pushed
type Enterer interface {
	Enter(nav *NavigationStack)
}

// Runner runs the command behind a CommandScreen
type Runner interface {
	Start(ctx context.Context, command string, args ...string) error
	Stop()
	Running() bool
	LastLines(n int) []string
}

// Entry is a line of a Menu: either a Screen to open or an Action to run
type Entry interface {
	Title() string
}

// Action is a menu entry that runs a function instead of opening a screen
type Action struct {
	Label string
	Run   func(nav *NavigationStack)
}

func (a *Action) Title() string {
	return a.Label
}

// dirtyFlag carries the redraw bookkeeping shared by all screens
type dirtyFlag struct {
	dirty bool
}

func (d *dirtyFlag) NeedsUpdate() bool {
	return d.dirty
}

func (d *dirtyFlag) MarkDirty() {
	d.dirty = true
}

// RowsFor returns how many lines fit on a panel of the given height
func RowsFor(height int) int {
	return max(height/lineHeight, 2)
}
