package menu

import (
	"fmt"

	"github.com/pleimann/duo-pad/internal/display"
)

// ValueAdjust edits an integer within [min,max]. First decrements, second
// increments, both commits the value and closes the screen.
type ValueAdjust struct {
	dirtyFlag

	title    string
	min      int
	max      int
	step     int
	value    int
	onChange func(int)
}

// NewValueAdjust creates the screen. A step below one is treated as one;
// onChange may be nil.
func NewValueAdjust(title string, lo, initial, hi, step int, onChange func(int)) *ValueAdjust {
	return &ValueAdjust{
		dirtyFlag: dirtyFlag{dirty: true},
		title:     title,
		min:       lo,
		max:       hi,
		step:      max(step, 1),
		value:     clamp(initial, lo, hi),
		onChange:  onChange,
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func (v *ValueAdjust) Title() string {
	return v.title
}

// Value returns the value currently shown
func (v *ValueAdjust) Value() int {
	return v.value
}

func (v *ValueAdjust) Render(c display.Canvas) error {
	v.dirty = false

	c.Blank()
	c.PrintLine(v.title, display.ColorDim, false)
	c.PrintLine(fmt.Sprintf("< %d >", v.value), display.ColorWhite, true)
	c.PrintLine(fmt.Sprintf("%d..%d step %d", v.min, v.max, v.step), display.ColorDim, false)

	return c.Commit()
}

func (v *ValueAdjust) OnFirst(*NavigationStack) {
	v.value = clamp(v.value-v.step, v.min, v.max)
	v.dirty = true
}

func (v *ValueAdjust) OnSecond(*NavigationStack) {
	v.value = clamp(v.value+v.step, v.min, v.max)
	v.dirty = true
}

func (v *ValueAdjust) OnBoth(nav *NavigationStack) {
	if v.onChange != nil {
		v.onChange(v.value)
	}
	nav.Pop()
}
