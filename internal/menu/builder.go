package menu

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pleimann/duo-pad/internal/config"
)

// Builder turns the configured menu tree into screens. Committed values are
// remembered by item path, so a rebuilt tree keeps them.
type Builder struct {
	runner Runner
	rows   int
	logger *zap.SugaredLogger

	mu     sync.Mutex
	values map[string]int
}

func NewBuilder(runner Runner, rows int, logger *zap.SugaredLogger) *Builder {
	return &Builder{
		runner: runner,
		rows:   rows,
		logger: logger.Named("menu"),
		values: make(map[string]int),
	}
}

// Build creates the root menu
func (b *Builder) Build(root config.MenuItem) *Menu {
	return b.menu(root, "menu")
}

func (b *Builder) menu(item config.MenuItem, path string) *Menu {
	entries := make([]Entry, 0, len(item.Items))
	for i, child := range item.Items {
		entries = append(entries, b.entry(child, fmt.Sprintf("%s.items[%d]", path, i)))
	}
	return NewMenu(item.Title, b.rows, entries...)
}

func (b *Builder) entry(item config.MenuItem, path string) Entry {
	switch {
	case item.IsSubmenu():
		return b.menu(item, path)
	case item.Value != nil:
		return b.value(item, path)
	default:
		return NewCommandScreen(item.Title, item.Command, item.Args, b.runner, b.rows)
	}
}

func (b *Builder) value(item config.MenuItem, path string) *ValueAdjust {
	v := item.Value
	initial, ok := b.Value(path)
	if !ok {
		initial = v.Initial
	}

	return NewValueAdjust(item.Title, v.Min, initial, v.Max, v.Step, func(committed int) {
		b.mu.Lock()
		b.values[path] = committed
		b.mu.Unlock()
		b.logger.Infow("Value committed", "title", item.Title, "path", path, "value", committed)
	})
}

// Value returns the last committed value for the item at path
func (b *Builder) Value(path string) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[path]
	return v, ok
}
