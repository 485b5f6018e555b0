package menu

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/pleimann/duo-pad/internal/display"
	"github.com/pleimann/duo-pad/internal/gesture"
)

// NavigationStack holds the open screens and forwards gestures to the top
// one. It is driven from a single goroutine; only SetRoot may be called
// from elsewhere.
type NavigationStack struct {
	ctx    context.Context
	stack  []Screen
	onExit func()
	logger *zap.SugaredLogger

	pendingMu sync.Mutex
	pending   Screen
}

// NewNavigationStack creates a stack with root at the bottom. onExit runs when
// the root is popped; the root itself stays in place.
func NewNavigationStack(ctx context.Context, root Screen, onExit func(), logger *zap.SugaredLogger) *NavigationStack {
	n := &NavigationStack{
		ctx:    ctx,
		onExit: onExit,
		logger: logger.Named("nav"),
	}
	n.Push(root)
	return n
}

// Context is handed to commands started from screens
func (n *NavigationStack) Context() context.Context {
	return n.ctx
}

// Push opens a screen on top of the stack
func (n *NavigationStack) Push(s Screen) {
	n.stack = append(n.stack, s)
	s.MarkDirty()
	n.logger.Debugw("Screen pushed", "title", s.Title(), "depth", len(n.stack))

	if e, ok := s.(Enterer); ok {
		e.Enter(n)
	}
}

// Pop closes the top screen. Popping the root calls the exit hook instead.
func (n *NavigationStack) Pop() {
	if len(n.stack) == 1 {
		n.logger.Debug("Root popped, exiting")
		if n.onExit != nil {
			n.onExit()
		}
		return
	}

	n.stack = n.stack[:len(n.stack)-1]
	top := n.Top()
	top.MarkDirty()
	n.logger.Debugw("Screen popped", "title", top.Title(), "depth", len(n.stack))
}

// Top returns the visible screen
func (n *NavigationStack) Top() Screen {
	return n.stack[len(n.stack)-1]
}

// Depth returns the number of open screens
func (n *NavigationStack) Depth() int {
	return len(n.stack)
}

// SetRoot replaces the whole stack with a new root. It is safe to call from
// any goroutine; the swap happens before the next gesture or render.
func (n *NavigationStack) SetRoot(root Screen) {
	n.pendingMu.Lock()
	defer n.pendingMu.Unlock()
	n.pending = root
}

func (n *NavigationStack) applyPending() {
	n.pendingMu.Lock()
	root := n.pending
	n.pending = nil
	n.pendingMu.Unlock()

	if root == nil {
		return
	}
	n.stack = []Screen{root}
	root.MarkDirty()
	n.logger.Infow("Menu replaced", "title", root.Title())
}

// NeedsUpdate reports whether the top screen wants a redraw
func (n *NavigationStack) NeedsUpdate() bool {
	n.applyPending()
	return n.Top().NeedsUpdate()
}

// Render draws the top screen
func (n *NavigationStack) Render(c display.Canvas) error {
	n.applyPending()
	return n.Top().Render(c)
}

// Handlers routes the three gestures to the top screen
func (n *NavigationStack) Handlers() gesture.Handlers {
	return gesture.Handlers{
		OnFirst: func() {
			n.applyPending()
			n.Top().OnFirst(n)
		},
		OnSecond: func() {
			n.applyPending()
			n.Top().OnSecond(n)
		},
		OnBoth: func() {
			n.applyPending()
			n.Top().OnBoth(n)
		},
	}
}
