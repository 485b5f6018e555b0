package hid

import (
	"encoding/binary"
	"fmt"
)

// Report IDs
const (
	ReportIDButtonEvent byte = 0x01
	ReportIDDisplay     byte = 0x02
)

// Event types for button events
const (
	EventTypePress   byte = 0x01
	EventTypeRelease byte = 0x02
)

// Display commands
const (
	DisplayCmdFullFrame byte = 0x01
	DisplayCmdPartial   byte = 0x02
	DisplayCmdClear     byte = 0x03
	DisplayCmdBacklight byte = 0x04
)

// MaxButtons is the width of the button mask in a report
const MaxButtons = 16

const (
	eventReportSize   = 8
	displayHeaderSize = 10
)

// Event is a button report from the pad. ButtonMask always carries the full
// set of buttons held after the change; Type says which edge caused it.
type Event struct {
	Type       EventType
	ButtonMask uint16
	Timestamp  uint32
}

type EventType byte

const (
	Press   EventType = EventType(EventTypePress)
	Release EventType = EventType(EventTypeRelease)
)

func (e EventType) String() string {
	switch e {
	case Press:
		return "press"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("unknown(%d)", byte(e))
	}
}

// ParseEvent parses a raw HID report into an Event
// Expected format:
//
//	Byte 0: Report ID (0x01)
//	Byte 1: Event type (0x01=press, 0x02=release)
//	Byte 2-3: Held button bitmask (little-endian)
//	Byte 4-7: Timestamp (ms since boot, little-endian u32)
func ParseEvent(data []byte) (*Event, error) {
	if len(data) < eventReportSize {
		return nil, fmt.Errorf("event data too short: %d bytes", len(data))
	}

	if data[0] != ReportIDButtonEvent {
		return nil, fmt.Errorf("unexpected report ID: 0x%02X", data[0])
	}

	eventType := data[1]
	if eventType != EventTypePress && eventType != EventTypeRelease {
		return nil, fmt.Errorf("unknown event type: 0x%02X", eventType)
	}

	return &Event{
		Type:       EventType(eventType),
		ButtonMask: binary.LittleEndian.Uint16(data[2:4]),
		Timestamp:  binary.LittleEndian.Uint32(data[4:8]),
	}, nil
}

// Encode serializes the event the way the pad firmware sends it
func (e *Event) Encode() []byte {
	buf := make([]byte, eventReportSize)
	buf[0] = ReportIDButtonEvent
	buf[1] = byte(e.Type)
	binary.LittleEndian.PutUint16(buf[2:4], e.ButtonMask)
	binary.LittleEndian.PutUint32(buf[4:8], e.Timestamp)
	return buf
}

// Held reports whether button is down in this report
func (e *Event) Held(button int) bool {
	if button < 0 || button >= MaxButtons {
		return false
	}
	return e.ButtonMask&(1<<button) != 0
}

// HeldButtons returns the indices of all held buttons in ascending order
func (e *Event) HeldButtons() []int {
	var buttons []int
	for i := 0; i < MaxButtons; i++ {
		if e.Held(i) {
			buttons = append(buttons, i)
		}
	}
	return buttons
}

// DisplayFrame is a command for the pad's display
type DisplayFrame struct {
	Command byte
	X       uint16
	Y       uint16
	Width   uint16
	Height  uint16
	Data    []byte // 1-bit packed pixel data, row-major, MSB first
}

// Encode serializes the DisplayFrame for transmission
// Format:
//
//	Byte 0: Report ID (0x02)
//	Byte 1: Command
//	Byte 2-3: X offset
//	Byte 4-5: Y offset
//	Byte 6-7: Width
//	Byte 8-9: Height
//	Byte 10+: Payload (pixels, or one on/off byte for backlight)
func (f *DisplayFrame) Encode() []byte {
	buf := make([]byte, displayHeaderSize+len(f.Data))

	buf[0] = ReportIDDisplay
	buf[1] = f.Command
	binary.LittleEndian.PutUint16(buf[2:4], f.X)
	binary.LittleEndian.PutUint16(buf[4:6], f.Y)
	binary.LittleEndian.PutUint16(buf[6:8], f.Width)
	binary.LittleEndian.PutUint16(buf[8:10], f.Height)
	copy(buf[displayHeaderSize:], f.Data)

	return buf
}

// NewPartialFrame creates a partial frame display update
func NewPartialFrame(x, y, width, height uint16, data []byte) *DisplayFrame {
	return &DisplayFrame{
		Command: DisplayCmdPartial,
		X:       x,
		Y:       y,
		Width:   width,
		Height:  height,
		Data:    data,
	}
}

// NewClearCommand creates a display clear command
func NewClearCommand() *DisplayFrame {
	return &DisplayFrame{
		Command: DisplayCmdClear,
	}
}

// NewBacklightCommand switches the pad's display backlight
func NewBacklightCommand(on bool) *DisplayFrame {
	var v byte
	if on {
		v = 1
	}
	return &DisplayFrame{
		Command: DisplayCmdBacklight,
		Data:    []byte{v},
	}
}

// MaxFramePayload is the pixel payload that fits in one 64-byte report
const MaxFramePayload = 64 - displayHeaderSize
