package display

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// lineSpacing is the gap left under every printed line
const lineSpacing = 1

// Renderer renders text lines to a 1-bit frame buffer and pushes it to a sink
type Renderer struct {
	width   int
	height  int
	img     *image.Gray
	face    font.Face
	encoder *FrameEncoder
	sink    FrameSink

	y    int
	last []byte
}

// NewRenderer creates a new display renderer. A nil sink renders off screen.
func NewRenderer(width, height int, sink FrameSink) *Renderer {
	return &Renderer{
		width:   width,
		height:  height,
		img:     image.NewGray(image.Rect(0, 0, width, height)),
		face:    basicfont.Face7x13,
		encoder: NewFrameEncoder(width, height),
		sink:    sink,
	}
}

// Clear clears the frame buffer
func (r *Renderer) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Black, image.Point{}, draw.Src)
}

// Blank clears the frame buffer and moves the line cursor back to the top
func (r *Renderer) Blank() {
	r.Clear()
	r.y = 0
}

// PrintLine draws one line of text at the cursor. A selected line is drawn
// dark on a bar of the given colour.
func (r *Renderer) PrintLine(text string, c Color, selected bool) {
	lineHeight := r.face.Metrics().Height.Ceil()
	ascent := r.face.Metrics().Ascent.Ceil()

	textColor := c
	if selected {
		r.FillRect(0, r.y, r.width, lineHeight, c)
		textColor = ColorBlack
	}
	r.DrawText(0, r.y+ascent, text, textColor)

	r.y += lineHeight + lineSpacing
}

// DrawText draws text with its baseline at y
func (r *Renderer) DrawText(x, y int, text string, c Color) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(color.Gray{Y: uint8(c)}),
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// FillRect draws a filled rectangle, clipped to the panel
func (r *Renderer) FillRect(x, y, width, height int, c Color) {
	rect := image.Rect(x, y, x+width, y+height)
	draw.Draw(r.img, rect, image.NewUniform(color.Gray{Y: uint8(c)}), image.Point{}, draw.Src)
}

// SetPixel sets a single pixel
func (r *Renderer) SetPixel(x, y int, on bool) {
	if on {
		r.img.SetGray(x, y, color.Gray{Y: 255})
	} else {
		r.img.SetGray(x, y, color.Gray{Y: 0})
	}
}

// Commit sends the frame buffer to the sink. Unchanged frames are skipped.
func (r *Renderer) Commit() error {
	if r.sink == nil {
		return nil
	}

	data := r.FrameBuffer()
	if bytes.Equal(data, r.last) {
		return nil
	}

	for _, frame := range r.encoder.ChunkFrame(data) {
		if err := r.sink.SendFrame(frame); err != nil {
			return fmt.Errorf("failed to send frame rows %d-%d: %w", frame.Y, int(frame.Y)+int(frame.Height)-1, err)
		}
	}
	r.last = data

	return nil
}

// Invalidate forgets the last committed frame so the next Commit is sent
// even if nothing changed
func (r *Renderer) Invalidate() {
	r.last = nil
}

// FrameBuffer returns the frame buffer as 1-bit packed data
// Format: row-major, 8 pixels per byte, MSB first
func (r *Renderer) FrameBuffer() []byte {
	bytesPerRow := (r.width + 7) / 8
	data := make([]byte, bytesPerRow*r.height)

	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			if r.img.GrayAt(x, y).Y > 127 {
				data[y*bytesPerRow+x/8] |= 1 << (7 - x%8)
			}
		}
	}

	return data
}

// Cursor returns the top of the next line
func (r *Renderer) Cursor() int {
	return r.y
}

// Width returns the renderer width
func (r *Renderer) Width() int {
	return r.width
}

// Height returns the renderer height
func (r *Renderer) Height() int {
	return r.height
}
