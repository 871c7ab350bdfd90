package menu

import (
	"time"

	"github.com/atomicstack/popup-menu/internal/clock"
	"github.com/atomicstack/popup-menu/internal/geometry"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/loop"
	"github.com/atomicstack/popup-menu/internal/typeahead"
)

// DefaultHoverDelay applies to both hover open and hover close.
const DefaultHoverDelay = 400 * time.Millisecond

// intent is one cancellable hover intention. The generation guards against a
// callback that had already been posted to the loop when it was cancelled.
type intent struct {
	slot *clock.Slot
	gen  uint64
}

func (in *intent) schedule(l loop.Loop, d time.Duration, f func()) {
	in.gen++
	gen := in.gen
	in.slot.Schedule(d, func() {
		l.Post(func() {
			if in.gen == gen {
				f()
			}
		})
	})
}

func (in *intent) cancel() {
	in.gen++
	if in.slot != nil {
		in.slot.Cancel()
	}
}

// SubmenuItem is an item that opens a nested menu anchored to itself.
type SubmenuItem struct {
	itemBase
	sub *Menu

	AnchorCorner    geometry.Corner
	MenuCorner      geometry.Corner
	XOffset         int
	YOffset         int
	HoverOpenDelay  time.Duration
	HoverCloseDelay time.Duration

	openIntent  intent
	closeIntent intent
}

// NewSubmenuItem returns an item that opens sub.
func NewSubmenuItem(id, headline string, sub *Menu) *SubmenuItem {
	return &SubmenuItem{
		itemBase:        itemBase{id: id, headline: headline},
		sub:             sub,
		AnchorCorner:    geometry.StartEnd,
		MenuCorner:      geometry.StartStart,
		HoverOpenDelay:  DefaultHoverDelay,
		HoverCloseDelay: DefaultHoverDelay,
	}
}

// Submenu returns the nested menu.
func (s *SubmenuItem) Submenu() *Menu { return s.sub }

func (s *SubmenuItem) setParent(m *Menu) {
	s.parent = m
	s.openIntent.slot = clock.NewSlot(m.env.Clock)
	s.closeIntent.slot = clock.NewSlot(m.env.Clock)
}

// PointerEnter schedules the submenu to open.
func (s *SubmenuItem) PointerEnter() {
	s.openIntent.cancel()
	s.closeIntent.cancel()
	if s.sub == nil || s.sub.Open() {
		return
	}
	if s.HoverOpenDelay <= 0 {
		s.hoverOpen()
		return
	}
	s.openIntent.schedule(s.parent.env.Loop, s.HoverOpenDelay, s.hoverOpen)
}

// PointerLeave schedules the submenu to close.
func (s *SubmenuItem) PointerLeave() {
	s.closeIntent.cancel()
	s.openIntent.cancel()
	if s.HoverCloseDelay <= 0 {
		s.hoverClose()
		return
	}
	s.closeIntent.schedule(s.parent.env.Loop, s.HoverCloseDelay, s.hoverClose)
}

func (s *SubmenuItem) hoverOpen() {
	events.Submenu.HoverOpen(s.id)
	s.show(nil)
}

func (s *SubmenuItem) hoverClose() {
	events.Submenu.HoverClose(s.id)
	s.close(nil)
}

// Click implements Item. Submenu items keep their menu open and open the
// submenu instead.
func (s *SubmenuItem) Click() {
	if s.disabled {
		return
	}
	s.show(nil)
}

// Close implements Item.
func (s *SubmenuItem) Close() {
	s.openIntent.cancel()
	s.closeIntent.cancel()
	s.close(nil)
}

// HandleKey implements Item. The forward key opens the submenu with its first
// item selected; other keys behave as for a leaf.
func (s *SubmenuItem) HandleKey(k Key) bool {
	if !s.isOpenKey(k) {
		return leafKey(s, k)
	}
	if s.sub == nil || s.disabled {
		return true
	}
	first := FirstSelectable(s.sub.Items())
	if first == nil {
		return true
	}
	events.Submenu.KeyOpen(s.id)
	s.show(func() {
		first.SetSelected(true)
	})
	return true
}

func (s *SubmenuItem) forward() typeahead.KeyKind {
	if s.box.Direction() == geometry.RTL {
		return typeahead.KeyLeft
	}
	return typeahead.KeyRight
}

func (s *SubmenuItem) backward() typeahead.KeyKind {
	if s.box.Direction() == geometry.RTL {
		return typeahead.KeyRight
	}
	return typeahead.KeyLeft
}

func (s *SubmenuItem) isOpenKey(k Key) bool {
	switch k.Kind {
	case s.forward(), typeahead.KeySpace, typeahead.KeyEnter:
		return true
	}
	return false
}

func (s *SubmenuItem) isCloseKey(k Key) bool {
	return k.Kind == s.backward() || k.Kind == typeahead.KeyEscape
}

// closeFromKey closes the submenu and hands focus back to this item.
func (s *SubmenuItem) closeFromKey() {
	events.Submenu.KeyClose(s.id)
	s.close(func() {
		DeselectAll(s.sub.Items())
		s.parent.Focus()
		s.SetSelected(true)
	})
}

func (s *SubmenuItem) show(onOpened func()) {
	if s.sub == nil {
		return
	}
	alreadyOpen := s.sub.Open()
	s.sub.Update(func(p *Props) {
		p.Quick = true
		p.HasOverflow = true
		p.AnchorCorner = s.AnchorCorner
		p.MenuCorner = s.MenuCorner
		p.XOffset = s.XOffset
		p.YOffset = s.YOffset
		p.Anchor = &s.box
		p.DefaultFocus = FocusListRoot
		p.SkipRestoreFocus = true
		p.Open = true
	})
	if s.parent != nil {
		s.parent.DeselectAll()
	}
	s.selected = true

	if onOpened == nil {
		return
	}
	if alreadyOpen {
		onOpened()
		return
	}
	s.sub.Once(Opened, onOpened)
}

func (s *SubmenuItem) close(onClosed func()) {
	if s.sub == nil || !s.sub.Open() {
		return
	}
	s.sub.Update(func(p *Props) { p.Quick = true })
	s.sub.Close()
	s.selected = false
	if onClosed != nil {
		s.sub.Once(Closed, onClosed)
	}
}
