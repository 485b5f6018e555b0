package hid

import (
	"encoding/binary"
	"testing"

	"github.com/karalabe/hid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(id, kind byte, mask uint16, ts uint32) []byte {
	buf := make([]byte, 8)
	buf[0] = id
	buf[1] = kind
	binary.LittleEndian.PutUint16(buf[2:4], mask)
	binary.LittleEndian.PutUint32(buf[4:8], ts)
	return buf
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    *Event
		wantErr string
	}{
		{
			name: "press first button",
			data: report(ReportIDButtonEvent, EventTypePress, 0x0001, 12345),
			want: &Event{Type: Press, ButtonMask: 0x0001, Timestamp: 12345},
		},
		{
			name: "release leaves one held",
			data: report(ReportIDButtonEvent, EventTypeRelease, 0x0002, 99999),
			want: &Event{Type: Release, ButtonMask: 0x0002, Timestamp: 99999},
		},
		{
			name: "trailing padding is ignored",
			data: append(report(ReportIDButtonEvent, EventTypePress, 0x0003, 1), 0, 0, 0),
			want: &Event{Type: Press, ButtonMask: 0x0003, Timestamp: 1},
		},
		{
			name:    "data too short",
			data:    []byte{0x01, 0x01, 0x00},
			wantErr: "too short",
		},
		{
			name:    "display ack",
			data:    report(ReportIDDisplay, EventTypePress, 0, 0),
			wantErr: "unexpected report ID",
		},
		{
			name:    "unknown event type",
			data:    report(ReportIDButtonEvent, 0xFF, 0, 0),
			wantErr: "unknown event type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvent(tt.data)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEventEncodeRoundTrip(t *testing.T) {
	e := &Event{Type: Release, ButtonMask: 0x8001, Timestamp: 42}
	got, err := ParseEvent(e.Encode())
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestEventHeld(t *testing.T) {
	e := &Event{ButtonMask: 0x0015}

	assert.True(t, e.Held(0))
	assert.False(t, e.Held(1))
	assert.True(t, e.Held(2))
	assert.True(t, e.Held(4))
	assert.False(t, e.Held(-1))
	assert.False(t, e.Held(MaxButtons))
	assert.Equal(t, []int{0, 2, 4}, e.HeldButtons())
	assert.Nil(t, (&Event{}).HeldButtons())
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "press", Press.String())
	assert.Equal(t, "release", Release.String())
	assert.Equal(t, "unknown(9)", EventType(9).String())
}

func TestDisplayFrameEncode(t *testing.T) {
	frame := NewPartialFrame(8, 16, 240, 1, []byte{0xAA, 0x55})
	buf := frame.Encode()

	require.Len(t, buf, 12)
	assert.Equal(t, ReportIDDisplay, buf[0])
	assert.Equal(t, DisplayCmdPartial, buf[1])
	assert.Equal(t, uint16(8), binary.LittleEndian.Uint16(buf[2:4]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(buf[4:6]))
	assert.Equal(t, uint16(240), binary.LittleEndian.Uint16(buf[6:8]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(buf[8:10]))
	assert.Equal(t, []byte{0xAA, 0x55}, buf[10:])
}

func TestDisplayCommands(t *testing.T) {
	cleared := NewClearCommand().Encode()
	assert.Equal(t, []byte{ReportIDDisplay, DisplayCmdClear, 0, 0, 0, 0, 0, 0, 0, 0}, cleared)

	on := NewBacklightCommand(true).Encode()
	require.Len(t, on, 11)
	assert.Equal(t, DisplayCmdBacklight, on[1])
	assert.Equal(t, byte(1), on[10])
	assert.Equal(t, byte(0), NewBacklightCommand(false).Encode()[10])
}

func TestUniqueDevices(t *testing.T) {
	got := uniqueDevices([]hid.DeviceInfo{
		{VendorID: 0x239A, ProductID: 0x80F4, Product: "Macropad", Path: "a"},
		{VendorID: 0x239A, ProductID: 0x80F4, Product: "Macropad", Path: "b"},
		{VendorID: 0, ProductID: 0, Product: "ghost"},
		{VendorID: 0x046D, ProductID: 0xC52B, Manufacturer: "Logitech", Product: "Receiver"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Path)
	assert.Equal(t, uint16(0x046D), got[1].VendorID)
	assert.Equal(t, "Logitech", got[1].Manufacturer)
}
