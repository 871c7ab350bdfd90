package ui

import (
	"github.com/mattn/go-runewidth"

	"github.com/atomicstack/popup-menu/internal/geometry"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/surface"
	"github.com/atomicstack/popup-menu/internal/ui/state"
)

const (
	minSurfaceWidth = 12
	// rowChrome covers both borders, the indicator and the submenu arrow.
	rowChrome = 6
)

// layout assigns terminal cells to the trigger, every visible surface and
// the rows inside them. Parents are laid out before the submenus anchored to
// their rows.
func (m *Model) layout() {
	vp := m.frames.Viewport()
	m.button.Anchor().SetRect(geometry.NewRect(m.anchorX, m.anchorY, m.buttonWidth(), 1))
	m.root.Walk(func(mm *menu.Menu) { m.layoutMenu(mm, vp) })
}

func (m *Model) buttonWidth() int {
	return runewidth.StringWidth(m.button.Label()) + 2
}

func (m *Model) layoutMenu(mm *menu.Menu, vp geometry.Size) {
	rows := mm.Rows()
	st := mm.Styles()
	if st.Display != surface.Visible {
		for _, r := range rows {
			r.Anchor().SetRect(geometry.Rect{})
		}
		return
	}
	size := measure(mm, vp)
	rect := geometry.Rect{Width: size.Width, Height: size.Height}
	props := mm.Props()
	if st.Positioned && props.Anchor != nil {
		rect = geometry.Place(st.Placement, props.Anchor.BoundingRect(), size, vp, mm.Surface().Direction(), props.Fixed)
	}
	mm.Surface().SetRect(rect)

	inner := rect.Height - 2
	sc := m.scrollFor(mm)
	sc.EnsureVisible(selectedRow(rows), len(rows), inner)
	from, to := sc.Window(len(rows), inner)
	for i, r := range rows {
		if i < from || i >= to {
			r.Anchor().SetRect(geometry.Rect{})
			continue
		}
		r.Anchor().SetRect(geometry.NewRect(rect.Left+1, rect.Top+1+i-from, rect.Width-2, 1))
	}
}

// measure returns the natural size of a surface, capped to the viewport.
func measure(mm *menu.Menu, vp geometry.Size) geometry.Size {
	widest := 0
	for _, it := range mm.Items() {
		widest = max(widest, runewidth.StringWidth(it.Headline()))
	}
	width := max(widest+rowChrome, minSurfaceWidth)
	height := len(mm.Rows()) + 2
	if vp.Width > 0 {
		width = min(width, vp.Width)
	}
	if vp.Height > 0 {
		height = min(height, vp.Height)
	}
	return geometry.Size{Width: width, Height: max(height, 3)}
}

func (m *Model) scrollFor(mm *menu.Menu) *state.Scroll {
	sc := m.scroll[mm]
	if sc == nil {
		sc = &state.Scroll{}
		m.scroll[mm] = sc
	}
	return sc
}

func selectedRow(rows []menu.Row) int {
	for i, r := range rows {
		if it, ok := r.(menu.Item); ok && it.Selected() {
			return i
		}
	}
	return -1
}

// visibleMenus lists the drawn surfaces, parents first.
func (m *Model) visibleMenus() []*menu.Menu {
	var out []*menu.Menu
	m.root.Walk(func(mm *menu.Menu) {
		if st := mm.Styles(); st.Display == surface.Visible && st.Positioned {
			out = append(out, mm)
		}
	})
	return out
}
