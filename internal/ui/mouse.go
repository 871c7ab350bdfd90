package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
)

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch {
	case ev.Action == tea.MouseActionMotion:
		m.hover(ev.X, ev.Y)
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		events.UI.Mouse("press", ev.X, ev.Y)
		m.press(ev.X, ev.Y)
	}
	return nil
}

// hitTest returns the topmost surface under (x, y) and the item row there,
// if any.
func (m *Model) hitTest(x, y int) (*menu.Menu, menu.Item) {
	menus := m.visibleMenus()
	for i := len(menus) - 1; i >= 0; i-- {
		mm := menus[i]
		if !mm.Surface().BoundingRect().Contains(x, y) {
			continue
		}
		for _, it := range mm.Items() {
			if it.Anchor().BoundingRect().Contains(x, y) {
				return mm, it
			}
		}
		return mm, nil
	}
	return nil, nil
}

// hover keeps a submenu item hovered while the pointer is on its row or
// anywhere inside the submenu it opened, the way nested elements behave.
func (m *Model) hover(x, y int) {
	next := make(map[*menu.SubmenuItem]bool)
	m.root.Walk(func(mm *menu.Menu) {
		if st := mm.Styles(); !st.Positioned {
			return
		}
		for _, it := range mm.Items() {
			sub, ok := it.(*menu.SubmenuItem)
			if !ok {
				continue
			}
			if sub.Anchor().BoundingRect().Contains(x, y) ||
				(sub.Submenu().Open() && sub.Submenu().Contains(x, y)) {
				next[sub] = true
			}
		}
	})
	for sub := range m.hovered {
		if !next[sub] {
			sub.PointerLeave()
		}
	}
	for sub := range next {
		if !m.hovered[sub] {
			sub.PointerEnter()
		}
	}
	m.hovered = next
}

func (m *Model) press(x, y int) {
	if m.button.Anchor().BoundingRect().Contains(x, y) {
		m.button.Activate(false)
		return
	}
	mm, it := m.hitTest(x, y)
	if mm == nil {
		m.root.PressOutside(x, y)
		return
	}
	mm.Focus()
	if it != nil && !it.Disabled() {
		it.Click()
	}
}
