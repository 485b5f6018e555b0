package display

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pleimann/duo-pad/internal/hid"
)

type recordingSink struct {
	frames []*hid.DisplayFrame
	err    error
}

func (s *recordingSink) SendFrame(frame *hid.DisplayFrame) error {
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, frame)
	return nil
}

func anySet(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return true
		}
	}
	return false
}

func TestNewRenderer(t *testing.T) {
	r := NewRenderer(128, 64, nil)

	assert.Equal(t, 128, r.Width())
	assert.Equal(t, 64, r.Height())
	assert.Zero(t, r.Cursor())
}

func TestRendererClear(t *testing.T) {
	r := NewRenderer(8, 8, nil)

	r.SetPixel(0, 0, true)
	r.SetPixel(7, 7, true)
	r.Clear()

	assert.False(t, anySet(r.FrameBuffer()))
}

func TestRendererSetPixel(t *testing.T) {
	r := NewRenderer(16, 8, nil)

	r.SetPixel(0, 0, true)
	r.SetPixel(7, 0, true)
	r.SetPixel(8, 0, true)
	r.SetPixel(15, 0, true)

	data := r.FrameBuffer()

	// MSB first: pixel 0 is bit 7, pixel 7 is bit 0
	assert.Equal(t, byte(0x81), data[0])
	assert.Equal(t, byte(0x81), data[1])

	r.SetPixel(0, 0, false)
	assert.Equal(t, byte(0x01), r.FrameBuffer()[0])
}

func TestRendererFillRect(t *testing.T) {
	r := NewRenderer(8, 4, nil)

	r.FillRect(2, 1, 4, 2, ColorWhite)

	assert.Equal(t, []byte{0x00, 0x3C, 0x3C, 0x00}, r.FrameBuffer())
}

func TestRendererFillRectClipped(t *testing.T) {
	r := NewRenderer(8, 2, nil)

	r.FillRect(6, -1, 10, 10, ColorWhite)

	assert.Equal(t, []byte{0x03, 0x03}, r.FrameBuffer())
}

func TestRendererDimThreshold(t *testing.T) {
	r := NewRenderer(8, 1, nil)

	r.FillRect(0, 0, 4, 1, ColorDim)
	r.FillRect(4, 0, 4, 1, Color(0x40))

	assert.Equal(t, []byte{0xF0}, r.FrameBuffer())
}

func TestRendererDrawText(t *testing.T) {
	r := NewRenderer(64, 16, nil)

	r.DrawText(0, 13, "Hello", ColorWhite)

	assert.True(t, anySet(r.FrameBuffer()))
}

func TestRendererPrintLine(t *testing.T) {
	r := NewRenderer(64, 64, nil)

	r.Blank()
	r.PrintLine("Title", ColorDim, false)
	assert.Equal(t, 14, r.Cursor())
	assert.True(t, anySet(r.FrameBuffer()))

	r.PrintLine("Item", ColorWhite, false)
	assert.Equal(t, 28, r.Cursor())

	r.Blank()
	assert.Zero(t, r.Cursor())
	assert.False(t, anySet(r.FrameBuffer()))
}

func TestRendererPrintLineSelected(t *testing.T) {
	r := NewRenderer(64, 32, nil)

	r.PrintLine("Go", ColorWhite, true)
	data := r.FrameBuffer()

	// the bar spans the full width of the first 13 rows
	assert.Equal(t, byte(0x01), data[7]&0x01, "bar reaches the right edge")
	assert.Equal(t, byte(0x01), data[12*8+7]&0x01, "bar covers the last row of the line")
	assert.Equal(t, byte(0x00), data[13*8+7], "spacing row stays dark")

	// the text is cut out of the bar
	var dark bool
	for row := 0; row < 13; row++ {
		if data[row*8] != 0xFF {
			dark = true
		}
	}
	assert.True(t, dark)
}

func TestRendererCommit(t *testing.T) {
	sink := &recordingSink{}
	r := NewRenderer(16, 32, sink)

	r.SetPixel(0, 0, true)
	require.NoError(t, r.Commit())
	require.Len(t, sink.frames, 2)
	assert.Equal(t, hid.DisplayCmdPartial, sink.frames[0].Command)
	assert.Equal(t, byte(0x80), sink.frames[0].Data[0])

	// nothing changed
	require.NoError(t, r.Commit())
	assert.Len(t, sink.frames, 2)

	r.SetPixel(1, 0, true)
	require.NoError(t, r.Commit())
	assert.Len(t, sink.frames, 4)

	r.Invalidate()
	require.NoError(t, r.Commit())
	assert.Len(t, sink.frames, 6)
}

func TestRendererCommitError(t *testing.T) {
	sink := &recordingSink{err: errors.New("device gone")}
	r := NewRenderer(16, 8, sink)

	err := r.Commit()
	assert.ErrorContains(t, err, "device gone")

	// a failed frame is sent again on the next commit
	sink.err = nil
	require.NoError(t, r.Commit())
	assert.Len(t, sink.frames, 1)
}

func TestRendererCommitWithoutSink(t *testing.T) {
	r := NewRenderer(8, 8, nil)
	r.PrintLine("x", ColorWhite, false)

	assert.NoError(t, r.Commit())
}
