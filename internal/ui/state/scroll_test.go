package state

import "testing"

func TestEnsureVisibleScrollsDown(t *testing.T) {
	var s Scroll
	s.EnsureVisible(7, 10, 4)
	if s.Offset != 4 {
		t.Fatalf("expected offset 4, got %d", s.Offset)
	}
	from, to := s.Window(10, 4)
	if from != 4 || to != 8 {
		t.Fatalf("unexpected window %d..%d", from, to)
	}
	above, below := s.Overflowing(10, 4)
	if !above || !below {
		t.Fatalf("expected overflow on both sides")
	}
}

func TestEnsureVisibleScrollsUp(t *testing.T) {
	s := Scroll{Offset: 5}
	s.EnsureVisible(2, 10, 4)
	if s.Offset != 2 {
		t.Fatalf("expected offset 2, got %d", s.Offset)
	}
}

func TestEnsureVisibleClampsOffset(t *testing.T) {
	s := Scroll{Offset: 9}
	s.EnsureVisible(-1, 10, 4)
	if s.Offset != 6 {
		t.Fatalf("expected clamp to 6, got %d", s.Offset)
	}

	s = Scroll{Offset: 3}
	s.EnsureVisible(0, 0, 4)
	if s.Offset != 0 {
		t.Fatalf("expected reset for empty list, got %d", s.Offset)
	}
}

func TestWindowWithoutOverflow(t *testing.T) {
	var s Scroll
	from, to := s.Window(3, 10)
	if from != 0 || to != 3 {
		t.Fatalf("unexpected window %d..%d", from, to)
	}
	if above, below := s.Overflowing(3, 10); above || below {
		t.Fatalf("expected no overflow")
	}
}
