// Package clock provides cancellable timers. Every logical intent (open,
// close, typeahead timeout) owns one Slot; scheduling on a Slot always
// cancels whatever it held before.
package clock

import (
	"sync"
	"time"
)

// Timer is a pending callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is the wall clock.
type Real struct{}

// AfterFunc implements Clock using time.AfterFunc.
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Slot holds at most one pending callback.
type Slot struct {
	clock Clock

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

// NewSlot returns a slot on the given clock. A nil clock uses Real.
func NewSlot(c Clock) *Slot {
	if c == nil {
		c = Real{}
	}
	return &Slot{clock: c}
}

// Schedule cancels any pending callback and arranges for f to run after d.
// A callback that was already firing when it got replaced is suppressed.
func (s *Slot) Schedule(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	gen := s.gen
	s.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		live := s.gen == gen
		if live {
			s.timer = nil
		}
		s.mu.Unlock()
		if live {
			f()
		}
	})
}

// Cancel drops the pending callback, if any.
func (s *Slot) Cancel() {
	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()
}

// Pending reports whether a callback is scheduled and has not fired.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *Slot) stopLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
