package menu

import "github.com/atomicstack/popup-menu/internal/typeahead"

// SelectedIndex returns the index of the selected item, or -1.
func SelectedIndex(items []Item) int {
	for i, it := range items {
		if it.Selected() {
			return i
		}
	}
	return -1
}

// SelectedItem returns the selected item, or nil.
func SelectedItem(items []Item) Item {
	if i := SelectedIndex(items); i >= 0 {
		return items[i]
	}
	return nil
}

// FirstSelectable returns the first enabled item, or nil.
func FirstSelectable(items []Item) Item {
	for _, it := range items {
		if !it.Disabled() {
			return it
		}
	}
	return nil
}

// LastSelectable returns the last enabled item, or nil.
func LastSelectable(items []Item) Item {
	for i := len(items) - 1; i >= 0; i-- {
		if !items[i].Disabled() {
			return items[i]
		}
	}
	return nil
}

// DeselectAll clears every selection flag.
func DeselectAll(items []Item) {
	for _, it := range items {
		it.SetSelected(false)
	}
}

// step walks from index from in direction delta, wrapping around and
// skipping disabled items. It returns nil when nothing is enabled.
func step(items []Item, from, delta int) Item {
	n := len(items)
	if n == 0 {
		return nil
	}
	i := from
	for tries := 0; tries < n; tries++ {
		i = (i + delta + n) % n
		if !items[i].Disabled() {
			return items[i]
		}
	}
	return nil
}

// Navigate moves the selection for a list navigation key and reports
// whether the key was one. With nothing selected, down selects the first
// item and up the last.
func Navigate(items []Item, k Key) bool {
	current := SelectedIndex(items)
	var next Item
	switch k.Kind {
	case typeahead.KeyDown:
		if current < 0 {
			next = FirstSelectable(items)
		} else {
			next = step(items, current, 1)
		}
	case typeahead.KeyUp:
		if current < 0 {
			next = LastSelectable(items)
		} else {
			next = step(items, current, -1)
		}
	case typeahead.KeyHome:
		next = FirstSelectable(items)
	case typeahead.KeyEnd:
		next = LastSelectable(items)
	default:
		return false
	}
	if next == nil {
		return true
	}
	if current >= 0 {
		items[current].SetSelected(false)
	}
	next.SetSelected(true)
	return true
}
