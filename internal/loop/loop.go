// Package loop marshals callbacks onto a single main sequence. Timers and
// lifecycle continuations fire on their own goroutines; they Post back so
// that menu state is only ever touched from one place.
package loop

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrMissingLoop is returned by constructors that need a main sequence and
// were not given one.
var ErrMissingLoop = errors.New("no loop configured")

// Loop runs posted functions one at a time, in order.
type Loop interface {
	Post(f func())
}

// Inline runs posted functions immediately on the poster's goroutine. It is
// only a single sequence when every poster is the owning goroutine, as with
// clock.Manual; timers or surface updates on their own goroutines need Chan.
type Inline struct{}

// Post implements Loop.
func (Inline) Post(f func()) {
	if f != nil {
		f()
	}
}

// Chan delivers posted functions over a channel. The owner drains C and
// calls each function.
type Chan struct {
	C chan func()

	pending atomic.Int64

	mu       sync.Mutex
	overflow []func()
	draining bool
}

// NewChan returns a channel loop with the given buffer.
func NewChan(buffer int) *Chan {
	return &Chan{C: make(chan func(), buffer)}
}

// Post implements Loop. It never blocks the caller: once the buffer is full,
// posts queue behind it and a single goroutine feeds them to C, so delivery
// order is always post order.
func (c *Chan) Post(f func()) {
	if f == nil {
		return
	}
	c.pending.Add(1)
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.draining {
		select {
		case c.C <- f:
			return
		default:
		}
		c.draining = true
		go c.drain()
	}
	c.overflow = append(c.overflow, f)
}

func (c *Chan) drain() {
	for {
		c.mu.Lock()
		if len(c.overflow) == 0 {
			c.draining = false
			c.mu.Unlock()
			return
		}
		f := c.overflow[0]
		c.overflow[0] = nil
		c.overflow = c.overflow[1:]
		c.mu.Unlock()
		c.C <- f
	}
}

// Run calls a function received from C and marks it delivered.
func (c *Chan) Run(f func()) {
	defer c.pending.Add(-1)
	if f != nil {
		f()
	}
}

// Pending counts functions posted but not yet Run, including any in transit
// between C and the caller.
func (c *Chan) Pending() int64 {
	return c.pending.Load()
}
