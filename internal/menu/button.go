package menu

import "github.com/atomicstack/popup-menu/internal/typeahead"

// Button is the trigger a root menu is anchored to.
type Button struct {
	box   Box
	label string
	menu  *Menu
}

// NewButton wires a trigger to its menu. The menu is anchored to the button
// unless it already has an anchor.
func NewButton(label string, m *Menu) (*Button, error) {
	if label == "" {
		return nil, ErrMissingButton
	}
	if m == nil {
		return nil, ErrMissingMenu
	}
	b := &Button{label: label, menu: m}
	if m.Props().Anchor == nil {
		m.mu.Lock()
		m.props.Anchor = &b.box
		m.mu.Unlock()
	}
	return b, nil
}

// Label returns the trigger text.
func (b *Button) Label() string { return b.label }

// Menu returns the menu the button controls.
func (b *Button) Menu() *Menu { return b.menu }

// Anchor returns the button's element.
func (b *Button) Anchor() *Box { return &b.box }

// Focus gives the button keyboard focus.
func (b *Button) Focus() { b.menu.env.Focus.Set(b) }

// Activate toggles the menu. Keyboard activation focuses the first item,
// pointer activation the list itself.
func (b *Button) Activate(keyboard bool) {
	if b.menu.Open() {
		b.menu.Update(func(p *Props) { p.Open = false })
		return
	}
	b.menu.Update(func(p *Props) {
		if keyboard {
			p.DefaultFocus = FocusFirstItem
		} else {
			p.DefaultFocus = FocusListRoot
		}
		p.Open = true
	})
}

// HandleKey implements Focusable.
func (b *Button) HandleKey(k Key) bool {
	switch k.Kind {
	case typeahead.KeyDown, typeahead.KeyUp:
		b.menu.Update(func(p *Props) {
			if k.Kind == typeahead.KeyUp {
				p.DefaultFocus = FocusLastItem
			} else {
				p.DefaultFocus = FocusFirstItem
			}
			p.Open = true
		})
		return true
	case typeahead.KeyEnter, typeahead.KeySpace:
		b.Activate(true)
		return true
	}
	return false
}
