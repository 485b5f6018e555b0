package menu

import (
	"github.com/pleimann/duo-pad/internal/display"
)

// ExitLabel is the title of the entry appended to every menu
const ExitLabel = "Exit"

// Menu is a titled list of entries. First moves the selection up, second
// moves it down, both activates the selected entry.
type Menu struct {
	dirtyFlag

	title    string
	entries  []Entry
	selected int
	rows     int
	offset   int
}

// NewMenu creates a menu showing up to rows lines (title included); rows of
// zero shows every entry. An Exit entry that pops the menu is appended.
func NewMenu(title string, rows int, entries ...Entry) *Menu {
	m := &Menu{
		dirtyFlag: dirtyFlag{dirty: true},
		title:     title,
		rows:      rows,
	}
	m.entries = append(append([]Entry(nil), entries...), &Action{
		Label: ExitLabel,
		Run:   func(nav *NavigationStack) { nav.Pop() },
	})
	return m
}

func (m *Menu) Title() string {
	return m.title
}

// Entries returns the menu entries including Exit
func (m *Menu) Entries() []Entry {
	return m.entries
}

// Selected returns the index of the highlighted entry
func (m *Menu) Selected() int {
	return m.selected
}

func (m *Menu) Render(c display.Canvas) error {
	m.dirty = false

	c.Blank()
	c.PrintLine(m.title, display.ColorDim, false)

	first, last := m.window()
	for i := first; i < last; i++ {
		c.PrintLine(m.entries[i].Title(), display.ColorWhite, i == m.selected)
	}

	return c.Commit()
}

// window returns the range of entries on screen, scrolled so the selection
// stays visible
func (m *Menu) window() (int, int) {
	visible := m.rows - 1
	if m.rows <= 0 || visible >= len(m.entries) {
		return 0, len(m.entries)
	}

	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}
	return m.offset, m.offset + visible
}

func (m *Menu) OnFirst(*NavigationStack) {
	m.selected = max(m.selected-1, 0)
	m.dirty = true
}

func (m *Menu) OnSecond(*NavigationStack) {
	m.selected = min(m.selected+1, len(m.entries)-1)
	m.dirty = true
}

func (m *Menu) OnBoth(nav *NavigationStack) {
	switch e := m.entries[m.selected].(type) {
	case Screen:
		nav.Push(e)
	case *Action:
		e.Run(nav)
	}
}
