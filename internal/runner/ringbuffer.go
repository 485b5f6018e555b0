package runner

import (
	"regexp"
	"strings"
)

// RingBuffer is a simple ring buffer for storing recent output
type RingBuffer struct {
	data  []byte
	size  int
	write int
}

// NewRingBuffer creates a new ring buffer with the given size
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{
		data: make([]byte, size),
		size: size,
	}
}

// Write writes data to the ring buffer, overwriting the oldest bytes
func (rb *RingBuffer) Write(p []byte) (int, error) {
	for _, b := range p {
		rb.data[rb.write] = b
		rb.write = (rb.write + 1) % rb.size
	}
	return len(p), nil
}

// String returns the buffer contents as a string
func (rb *RingBuffer) String() string {
	// Return from oldest to newest
	result := make([]byte, rb.size)
	for i := 0; i < rb.size; i++ {
		result[i] = rb.data[(rb.write+i)%rb.size]
	}
	// Trim null bytes
	start := 0
	for start < len(result) && result[start] == 0 {
		start++
	}
	return string(result[start:])
}

// Reset empties the buffer
func (rb *RingBuffer) Reset() {
	clear(rb.data)
	rb.write = 0
}

var escapeSequence = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]|\x1b\][^\a]*\a`)

// LastLines returns up to n of the most recent complete or partial lines,
// oldest first, with terminal escapes and carriage returns removed
func (rb *RingBuffer) LastLines(n int) []string {
	if n <= 0 {
		return nil
	}

	text := escapeSequence.ReplaceAllString(rb.String(), "")
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
