// Package runner runs menu commands in a pseudo-terminal and keeps their
// recent output for the display.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"go.uber.org/zap"
)

const (
	// outputSize is how much recent output is kept
	outputSize = 4096

	// drainTimeout bounds how long output is read after the process exits
	drainTimeout = 200 * time.Millisecond

	// stopTimeout is how long Stop waits after an interrupt before killing
	stopTimeout = 2 * time.Second
)

// DefaultSize fits the 240x135 panel with the 7x13 font
var DefaultSize = pty.Winsize{Rows: 9, Cols: 34}

// ErrRunning is returned by Start while a previous command is still running
var ErrRunning = errors.New("a command is already running")

// Manager runs one command at a time in a PTY
type Manager struct {
	logger *zap.SugaredLogger
	size   pty.Winsize

	mu      sync.Mutex
	ptmx    *os.File
	cmd     *exec.Cmd
	done    chan struct{}
	exitErr error

	outputMu     sync.RWMutex
	outputBuffer *RingBuffer
}

// NewManager creates a new command runner
func NewManager(logger *zap.SugaredLogger) *Manager {
	return &Manager{
		logger:       logger.Named("runner"),
		size:         DefaultSize,
		outputBuffer: NewRingBuffer(outputSize),
	}
}

// Start runs command in a new PTY. Output from any previous run is discarded.
func (m *Manager) Start(ctx context.Context, command string, args ...string) error {
	if command == "" {
		return fmt.Errorf("command is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running() {
		return ErrRunning
	}

	m.outputMu.Lock()
	m.outputBuffer.Reset()
	m.outputMu.Unlock()

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Env = os.Environ()

	size := m.size
	ptmx, err := pty.StartWithSize(cmd, &size)
	if err != nil {
		return fmt.Errorf("failed to start %s in PTY: %w", command, err)
	}

	m.ptmx = ptmx
	m.cmd = cmd
	m.exitErr = nil
	m.done = make(chan struct{})

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		m.readOutput(ptmx)
	}()
	go m.wait(cmd, ptmx, readDone, m.done)

	m.logger.Infow("Command started", "command", command, "args", args, "pid", cmd.Process.Pid)
	return nil
}

func (m *Manager) wait(cmd *exec.Cmd, ptmx *os.File, readDone <-chan struct{}, done chan<- struct{}) {
	err := cmd.Wait()

	// a leftover child can keep the terminal open; stop reading after a while
	select {
	case <-readDone:
	case <-time.After(drainTimeout):
	}
	ptmx.Close()
	<-readDone

	m.mu.Lock()
	m.exitErr = err
	m.mu.Unlock()

	if err != nil {
		m.logger.Infow("Command exited", "command", cmd.Path, "error", err)
	} else {
		m.logger.Infow("Command exited", "command", cmd.Path)
	}
	close(done)
}

// readOutput reads from the PTY into the ring buffer until the PTY closes
func (m *Manager) readOutput(ptmx *os.File) {
	buf := make([]byte, 1024)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			m.outputMu.Lock()
			m.outputBuffer.Write(buf[:n])
			m.outputMu.Unlock()
		}
		if err != nil {
			// EOF, or EIO once the child side is gone
			return
		}
	}
}

// Stop interrupts the running command and waits for it, killing it if it
// does not exit in time
func (m *Manager) Stop() {
	m.mu.Lock()
	cmd, done := m.cmd, m.done
	running := m.running()
	m.mu.Unlock()

	if !running {
		return
	}

	m.logger.Debugw("Stopping command", "command", cmd.Path)
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		m.logger.Debugw("Failed to interrupt command", "error", err)
	}

	select {
	case <-done:
	case <-time.After(stopTimeout):
		m.logger.Warnw("Command ignored interrupt, killing", "command", cmd.Path)
		_ = cmd.Process.Kill()
		<-done
	}
}

// Done is closed when the current command has exited. Nil before the first Start.
func (m *Manager) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

// Err returns the exit error of the last finished command
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exitErr
}

// Running returns whether a command is running
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running()
}

func (m *Manager) running() bool {
	if m.done == nil {
		return false
	}
	select {
	case <-m.done:
		return false
	default:
		return true
	}
}

// LastLines returns up to n lines of the most recent output
func (m *Manager) LastLines(n int) []string {
	m.outputMu.RLock()
	defer m.outputMu.RUnlock()
	return m.outputBuffer.LastLines(n)
}

// Output returns the raw recent output
func (m *Manager) Output() string {
	m.outputMu.RLock()
	defer m.outputMu.RUnlock()
	return m.outputBuffer.String()
}
