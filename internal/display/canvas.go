// Package display draws screens onto the pad's panel and drives its backlight.
package display

// Color is a grey level; the panel thresholds it to one bit
type Color uint8

const (
	ColorWhite Color = 0xFF
	ColorDim   Color = 0xAA
	ColorBlack Color = 0x00
)

// Canvas is a line-oriented drawing surface. Lines are laid out top to
// bottom from the last Blank; nothing is shown until Commit.
type Canvas interface {
	Blank()
	PrintLine(text string, c Color, selected bool)
	Commit() error
}

// Nop is a Canvas that draws nothing, used when no panel is attached
type Nop struct{}

func (Nop) Blank() {}

func (Nop) PrintLine(string, Color, bool) {}

func (Nop) Commit() error { return nil }
