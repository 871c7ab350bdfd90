package clock

import (
	"testing"
	"time"
)

func TestSlotScheduleReplacesPending(t *testing.T) {
	c := NewManual()
	s := NewSlot(c)
	var fired []string
	s.Schedule(100*time.Millisecond, func() { fired = append(fired, "first") })
	s.Schedule(100*time.Millisecond, func() { fired = append(fired, "second") })
	c.Advance(100 * time.Millisecond)
	if len(fired) != 1 || fired[0] != "second" {
		t.Fatalf("expected only the latest intent to fire, got %v", fired)
	}
	if s.Pending() {
		t.Fatalf("expected slot to be idle after firing")
	}
}

func TestSlotCancel(t *testing.T) {
	c := NewManual()
	s := NewSlot(c)
	fired := false
	s.Schedule(50*time.Millisecond, func() { fired = true })
	if !s.Pending() {
		t.Fatalf("expected pending timer")
	}
	s.Cancel()
	c.Advance(time.Second)
	if fired {
		t.Fatalf("cancelled callback fired")
	}
	if c.Pending() != 0 {
		t.Fatalf("expected no live timers, got %d", c.Pending())
	}
}

func TestManualFiresInDeadlineOrder(t *testing.T) {
	c := NewManual()
	var order []int
	c.AfterFunc(30*time.Millisecond, func() { order = append(order, 3) })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	c.AfterFunc(20*time.Millisecond, func() {
		order = append(order, 2)
		c.AfterFunc(5*time.Millisecond, func() { order = append(order, 25) })
	})
	c.Advance(25 * time.Millisecond)
	c.Advance(5 * time.Millisecond)
	want := []int{1, 2, 25, 3}
	if len(order) != len(want) {
		t.Fatalf("unexpected order %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", order, want)
		}
	}
}

func TestRealSlotFires(t *testing.T) {
	s := NewSlot(nil)
	done := make(chan struct{})
	s.Schedule(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("real timer never fired")
	}
}
