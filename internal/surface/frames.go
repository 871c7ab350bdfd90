package surface

import (
	"context"
	"sync"

	"github.com/atomicstack/popup-menu/internal/geometry"
)

// Frames is a Host built from a request counter. The renderer calls Settle
// with the generation it laid out; UpdateComplete returns once every
// requested generation has settled.
type Frames struct {
	onRequest func(generation uint64)

	mu        sync.Mutex
	requested uint64
	settled   uint64
	wake      chan struct{}
	viewport  geometry.Size
}

// NewFrames returns a frame host. onRequest is called, outside the lock, for
// every RequestUpdate.
func NewFrames(onRequest func(generation uint64)) *Frames {
	return &Frames{onRequest: onRequest, wake: make(chan struct{})}
}

// RequestUpdate implements Host.
func (f *Frames) RequestUpdate() {
	f.mu.Lock()
	f.requested++
	gen := f.requested
	cb := f.onRequest
	f.mu.Unlock()
	if cb != nil {
		cb(gen)
	}
}

// UpdateComplete implements Host.
func (f *Frames) UpdateComplete(ctx context.Context) error {
	for {
		f.mu.Lock()
		if f.settled >= f.requested {
			f.mu.Unlock()
			return nil
		}
		wake := f.wake
		f.mu.Unlock()
		select {
		case <-wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Requested returns the newest requested generation.
func (f *Frames) Requested() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requested
}

// Settle marks every generation up to gen as laid out.
func (f *Frames) Settle(gen uint64) {
	f.mu.Lock()
	if gen > f.settled {
		f.settled = gen
	}
	close(f.wake)
	f.wake = make(chan struct{})
	f.mu.Unlock()
}

// SetViewport records the current viewport size.
func (f *Frames) SetViewport(size geometry.Size) {
	f.mu.Lock()
	f.viewport = size
	f.mu.Unlock()
}

// Viewport implements Host.
func (f *Frames) Viewport() geometry.Size {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewport
}

// Static is a Host whose layout is always current. It suits headless use
// and tests where geometry is written directly.
type Static struct {
	Size geometry.Size
}

// RequestUpdate implements Host.
func (Static) RequestUpdate() {}

// UpdateComplete implements Host.
func (Static) UpdateComplete(context.Context) error { return nil }

// Viewport implements Host.
func (s Static) Viewport() geometry.Size { return s.Size }
