package display

import (
	"github.com/pleimann/duo-pad/internal/hid"
)

// FrameSink accepts encoded display commands, normally the HID device
type FrameSink interface {
	SendFrame(frame *hid.DisplayFrame) error
}

// FrameEncoder encodes rendered frames for transmission to the device
type FrameEncoder struct {
	width  int
	height int
}

// NewFrameEncoder creates a new frame encoder
func NewFrameEncoder(width, height int) *FrameEncoder {
	return &FrameEncoder{
		width:  width,
		height: height,
	}
}

// EncodePartialFrame creates a partial frame display command
func (e *FrameEncoder) EncodePartialFrame(x, y, width, height int, data []byte) *hid.DisplayFrame {
	return hid.NewPartialFrame(
		uint16(x), uint16(y),
		uint16(width), uint16(height),
		data,
	)
}

// EncodeClear creates a display clear command
func (e *FrameEncoder) EncodeClear() *hid.DisplayFrame {
	return hid.NewClearCommand()
}

// MaxPayloadSize returns the maximum data payload of a single HID report
func (e *FrameEncoder) MaxPayloadSize() int {
	return hid.MaxFramePayload
}

// ChunkFrame splits a packed frame into row bands that each fit one report
func (e *FrameEncoder) ChunkFrame(data []byte) []*hid.DisplayFrame {
	bytesPerRow := (e.width + 7) / 8
	rowsPerChunk := e.MaxPayloadSize() / bytesPerRow
	if rowsPerChunk == 0 {
		rowsPerChunk = 1
	}

	var frames []*hid.DisplayFrame
	for y := 0; y < e.height; y += rowsPerChunk {
		chunkHeight := min(rowsPerChunk, e.height-y)

		start := min(y*bytesPerRow, len(data))
		end := min((y+chunkHeight)*bytesPerRow, len(data))

		frames = append(frames, e.EncodePartialFrame(0, y, e.width, chunkHeight, data[start:end]))
	}

	return frames
}
