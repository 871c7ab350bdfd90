package menu

import (
	"sync"

	"github.com/atomicstack/popup-menu/internal/geometry"
)

// Box is an element whose geometry the renderer writes after each layout
// pass. It satisfies surface.Element.
type Box struct {
	mu   sync.Mutex
	rect geometry.Rect
	dir  geometry.Direction
}

// SetRect records the laid out rectangle.
func (b *Box) SetRect(r geometry.Rect) {
	b.mu.Lock()
	b.rect = r
	b.mu.Unlock()
}

// SetDirection records the resolved writing direction.
func (b *Box) SetDirection(d geometry.Direction) {
	b.mu.Lock()
	b.dir = d
	b.mu.Unlock()
}

// BoundingRect returns the last laid out rectangle.
func (b *Box) BoundingRect() geometry.Rect {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rect
}

// Direction returns the resolved writing direction.
func (b *Box) Direction() geometry.Direction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dir
}

// Focusable receives keys while it holds focus.
type Focusable interface {
	HandleKey(k Key) bool
}

// Focus tracks the single keyboard target of a menu tree.
type Focus struct {
	current Focusable
}

// Set moves focus. A nil target is ignored.
func (f *Focus) Set(t Focusable) {
	if t != nil {
		f.current = t
	}
}

// Current returns the focused target, or nil.
func (f *Focus) Current() Focusable {
	return f.current
}

// HandleKey routes k to the focused target.
func (f *Focus) HandleKey(k Key) bool {
	if f.current == nil {
		return false
	}
	return f.current.HandleKey(k)
}
