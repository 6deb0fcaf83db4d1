package tui

import (
	"sync"
)

// termViewport adapts terminal resize messages to responsive.Viewport.
// Widths are reported in pixels: columns times the cell width.
type termViewport struct {
	cellWidth float64

	mu        sync.Mutex
	columns   int
	listeners map[int]func()
	nextID    int
}

func newTermViewport(columns int, cellWidth float64) *termViewport {
	if cellWidth <= 0 {
		cellWidth = defaultCellWidth
	}
	return &termViewport{cellWidth: cellWidth, columns: columns, listeners: make(map[int]func())}
}

// Width implements responsive.Viewport.
func (v *termViewport) Width() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return float64(v.columns) * v.cellWidth
}

// OnResize implements responsive.Viewport.
func (v *termViewport) OnResize(fn func()) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.listeners, id)
	}
}

// SetColumns records a new terminal width and notifies listeners when it changed.
func (v *termViewport) SetColumns(columns int) {
	v.mu.Lock()
	if columns == v.columns {
		v.mu.Unlock()
		return
	}
	v.columns = columns
	fns := make([]func(), 0, len(v.listeners))
	for _, fn := range v.listeners {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
