// Package state holds per-surface view state that the menu model does not
// own, such as the scroll window of an overflowing list.
package state

// Scroll is the visible window over a list of rows.
type Scroll struct {
	Offset int
}

// EnsureVisible adjusts the offset so cursor stays inside a window of
// maxVisible rows over total rows. A negative cursor only clamps the offset.
func (s *Scroll) EnsureVisible(cursor, total, maxVisible int) {
	if total == 0 || maxVisible <= 0 {
		s.Offset = 0
		return
	}
	maxOffset := total - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.Offset > maxOffset {
		s.Offset = maxOffset
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
	if cursor < 0 {
		return
	}
	if cursor >= total {
		cursor = total - 1
	}
	if cursor < s.Offset {
		s.Offset = cursor
	}
	upper := s.Offset + maxVisible - 1
	if cursor > upper {
		s.Offset = cursor - maxVisible + 1
		if s.Offset > maxOffset {
			s.Offset = maxOffset
		}
	}
}

// Window returns the half-open range of visible rows.
func (s *Scroll) Window(total, maxVisible int) (from, to int) {
	if maxVisible <= 0 || maxVisible >= total {
		return 0, total
	}
	from = s.Offset
	to = from + maxVisible
	if to > total {
		to = total
	}
	return from, to
}

// Overflowing reports whether rows are hidden above or below the window.
func (s *Scroll) Overflowing(total, maxVisible int) (above, below bool) {
	from, to := s.Window(total, maxVisible)
	return from > 0, to < total
}
