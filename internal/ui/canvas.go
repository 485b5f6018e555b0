package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pleimann/duo-pad/internal/display"
)

// TextCanvas renders screens as terminal text, standing in for the panel
type TextCanvas struct {
	cols int
	rows int

	pending []string
	shown   []string
}

// NewTextCanvas sizes the canvas like a panel of the given pixel size
// drawn in the 7x13 font
func NewTextCanvas(width, height, rows int) *TextCanvas {
	return &TextCanvas{
		cols: max(width/7, 8),
		rows: rows,
	}
}

func (c *TextCanvas) Blank() {
	c.pending = c.pending[:0]
}

func (c *TextCanvas) PrintLine(text string, color display.Color, selected bool) {
	if len(c.pending) >= c.rows {
		return
	}

	runes := []rune(text)
	if len(runes) > c.cols {
		runes = runes[:c.cols]
	}
	text = string(runes) + strings.Repeat(" ", c.cols-len(runes))

	c.pending = append(c.pending, PanelLineStyle(color, selected).Render(text))
}

func (c *TextCanvas) Commit() error {
	c.shown = append(c.shown[:0], c.pending...)
	return nil
}

// String returns the last committed screen padded to the panel height
func (c *TextCanvas) String() string {
	lines := make([]string, c.rows)
	blank := strings.Repeat(" ", c.cols)
	for i := range lines {
		if i < len(c.shown) {
			lines[i] = c.shown[i]
		} else {
			lines[i] = blank
		}
	}
	return PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
