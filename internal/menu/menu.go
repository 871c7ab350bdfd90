// Package menu builds trees of popup menus on top of the surface lifecycle.
//
// Everything in a tree runs on one loop: key and pointer handlers, timer
// continuations and lifecycle callbacks. Surface controllers run their
// updates on worker goroutines and post back through the loop, so item
// state is only touched from there. Menu properties are guarded because the
// controllers read them.
package menu

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atomicstack/popup-menu/internal/clock"
	"github.com/atomicstack/popup-menu/internal/geometry"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/loop"
	"github.com/atomicstack/popup-menu/internal/surface"
	"github.com/atomicstack/popup-menu/internal/typeahead"
)

// DefaultFocus selects what takes focus once a menu has opened.
type DefaultFocus int

const (
	FocusListRoot DefaultFocus = iota
	FocusNone
	FocusFirstItem
	FocusLastItem
)

func (f DefaultFocus) String() string {
	switch f {
	case FocusNone:
		return "NONE"
	case FocusFirstItem:
		return "FIRST_ITEM"
	case FocusLastItem:
		return "LAST_ITEM"
	default:
		return "LIST_ROOT"
	}
}

// ParseDefaultFocus parses NONE, LIST_ROOT, FIRST_ITEM or LAST_ITEM.
func ParseDefaultFocus(s string) (DefaultFocus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE":
		return FocusNone, nil
	case "LIST_ROOT", "":
		return FocusListRoot, nil
	case "FIRST_ITEM":
		return FocusFirstItem, nil
	case "LAST_ITEM":
		return FocusLastItem, nil
	}
	return FocusListRoot, fmt.Errorf("invalid default focus %q", s)
}

// Props are the menu's reactive properties. Changing them through Update
// schedules a surface update.
type Props struct {
	Anchor                 surface.Element
	Fixed                  bool
	Quick                  bool
	HasOverflow            bool
	Open                   bool
	XOffset                int
	YOffset                int
	TypeaheadDelay         time.Duration
	AnchorCorner           geometry.Corner
	MenuCorner             geometry.Corner
	StayOpenOnOutsideClick bool
	SkipRestoreFocus       bool
	DefaultFocus           DefaultFocus
}

// DefaultProps returns the properties of a freshly created menu.
func DefaultProps() Props {
	return Props{
		TypeaheadDelay: typeahead.DefaultBufferTime,
		AnchorCorner:   geometry.EndStart,
		MenuCorner:     geometry.StartStart,
		DefaultFocus:   FocusListRoot,
	}
}

// Env is shared by every menu of a tree. Loop is required: surface updates
// and timers finish on their own goroutines and post back through it.
type Env struct {
	Loop     loop.Loop
	Clock    clock.Clock
	Host     surface.Host
	Focus    *Focus
	Animator Animator
	Listener Listener
	Context  context.Context
}

func (e Env) withDefaults() Env {
	if e.Clock == nil {
		e.Clock = clock.Real{}
	}
	if e.Host == nil {
		e.Host = surface.Static{}
	}
	if e.Focus == nil {
		e.Focus = &Focus{}
	}
	if e.Context == nil {
		e.Context = context.Background()
	}
	return e
}

// Menu is one floating list surface.
type Menu struct {
	id  string
	uid string
	env Env
	box Box

	mu    sync.Mutex
	props Props

	rows        []Row
	owner       *SubmenuItem
	ctrl        *surface.Controller
	typeahead   *typeahead.Engine
	lastFocused Focusable
	once        map[Event][]func()
	onClose     func(CloseEvent)
}

// New creates a closed menu.
func New(id string, env Env) (*Menu, error) {
	if env.Loop == nil {
		return nil, fmt.Errorf("menu %s: %w", id, loop.ErrMissingLoop)
	}
	env = env.withDefaults()
	m := &Menu{
		id:    id,
		uid:   uuid.NewString(),
		env:   env,
		props: DefaultProps(),
		once:  make(map[Event][]func()),
	}
	m.ctrl = surface.New(env.Host, m.surfaceConfig, surface.WithID(id+"#"+m.uid[:8]))
	ta, err := typeahead.New(m.typeaheadItems, env.Loop,
		typeahead.WithClock(env.Clock),
		typeahead.WithBufferTime(func() time.Duration { return m.Props().TypeaheadDelay }),
	)
	if err != nil {
		return nil, fmt.Errorf("menu %s: %w", id, err)
	}
	m.typeahead = ta
	return m, nil
}

// ID returns the menu's id.
func (m *Menu) ID() string { return m.id }

// Env returns the tree environment.
func (m *Menu) Env() Env { return m.env }

// Surface is the menu's own element.
func (m *Menu) Surface() *Box { return &m.box }

// Owner returns the submenu item that opens this menu, or nil for a root.
func (m *Menu) Owner() *SubmenuItem { return m.owner }

// Controller exposes the surface lifecycle controller.
func (m *Menu) Controller() *surface.Controller { return m.ctrl }

// Styles is shorthand for Controller().Styles().
func (m *Menu) Styles() surface.Styles { return m.ctrl.Styles() }

// Typeahead exposes the typeahead engine.
func (m *Menu) Typeahead() *typeahead.Engine { return m.typeahead }

// Add appends rows to the menu.
func (m *Menu) Add(rows ...Row) {
	for _, r := range rows {
		if it, ok := r.(Item); ok {
			it.setParent(m)
		}
		if sub, ok := r.(*SubmenuItem); ok && sub.sub != nil {
			sub.sub.owner = sub
		}
		m.rows = append(m.rows, r)
	}
}

// Rows returns every row, dividers included.
func (m *Menu) Rows() []Row { return m.rows }

// Items returns the menu items in order.
func (m *Menu) Items() []Item {
	items := make([]Item, 0, len(m.rows))
	for _, r := range m.rows {
		if it, ok := r.(Item); ok {
			items = append(items, it)
		}
	}
	return items
}

func (m *Menu) typeaheadItems() []typeahead.Item {
	items := m.Items()
	out := make([]typeahead.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// Props returns a copy of the current properties.
func (m *Menu) Props() Props {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.props
}

// Update mutates the properties and schedules a surface update.
func (m *Menu) Update(f func(p *Props)) {
	m.mu.Lock()
	f(&m.props)
	m.mu.Unlock()
	m.ctrl.Request(m.env.Context)
}

// Open reports the open property.
func (m *Menu) Open() bool { return m.Props().Open }

// Show opens the menu.
func (m *Menu) Show() {
	m.Update(func(p *Props) { p.Open = true })
}

// Close closes the menu and anything its items own.
func (m *Menu) Close() {
	m.Update(func(p *Props) { p.Open = false })
	for _, it := range m.Items() {
		it.Close()
	}
}

// OpenDirection is DOWN when the menu's block corner is START, else UP.
func (m *Menu) OpenDirection() string {
	if m.Props().MenuCorner.Block == geometry.Start {
		return "DOWN"
	}
	return "UP"
}

// OnClose is called when a close request reaches this menu without being
// stopped by an enclosing submenu item.
func (m *Menu) OnClose(f func(CloseEvent)) { m.onClose = f }

// Focus gives the menu's list keyboard focus.
func (m *Menu) Focus() { m.env.Focus.Set(m) }

// Focused reports whether the menu holds focus.
func (m *Menu) Focused() bool { return m.env.Focus.Current() == Focusable(m) }

// DeselectAll clears the selection of every item in this menu.
func (m *Menu) DeselectAll() { DeselectAll(m.Items()) }

// Walk visits m and every nested menu, depth first.
func (m *Menu) Walk(f func(*Menu)) {
	f(m)
	for _, it := range m.Items() {
		if sub, ok := it.(*SubmenuItem); ok && sub.sub != nil {
			sub.sub.Walk(f)
		}
	}
}

// Busy reports whether any surface in the tree is mid-transition.
func (m *Menu) Busy() bool {
	busy := false
	m.Walk(func(mm *Menu) {
		if mm.ctrl.Busy() {
			busy = true
		}
	})
	return busy
}

// Contains reports whether the point lies on this menu or one of its open
// submenus.
func (m *Menu) Contains(x, y int) bool {
	if m.Styles().Display == surface.Visible && m.box.BoundingRect().Contains(x, y) {
		return true
	}
	for _, it := range m.Items() {
		if sub, ok := it.(*SubmenuItem); ok && sub.sub != nil && sub.sub.Open() && sub.sub.Contains(x, y) {
			return true
		}
	}
	return false
}

// PressOutside handles a pointer press at (x, y): every open menu of the tree
// the press is outside of closes, unless it stays open on outside clicks.
func (m *Menu) PressOutside(x, y int) {
	m.Walk(func(mm *Menu) {
		if !mm.Open() || mm.Contains(x, y) || mm.Props().StayOpenOnOutsideClick {
			return
		}
		mm.Update(func(p *Props) { p.Open = false })
	})
}

// HandleKey routes a key through the active item, typeahead, list
// navigation and finally the owning submenu item.
func (m *Menu) HandleKey(k Key) bool {
	if !m.Open() {
		if m.owner != nil && m.owner.parent != nil {
			m.owner.parent.Focus()
			return m.owner.parent.HandleKey(k)
		}
		return false
	}
	events.UI.Key(m.id, k.String())
	if k.Kind == typeahead.KeySpace && m.typeahead.Active() {
		return m.typeahead.HandleKey(k)
	}
	items := m.Items()
	if sel := SelectedItem(items); sel != nil && sel.HandleKey(k) {
		return true
	}
	if m.typeahead.HandleKey(k) {
		return true
	}
	if Navigate(items, k) {
		return true
	}
	if m.owner != nil && m.owner.isCloseKey(k) {
		m.owner.closeFromKey()
		return true
	}
	return false
}

// dispatchClose closes this menu and carries the event up the cascade.
func (m *Menu) dispatchClose(ev CloseEvent) {
	events.Menu.Close(m.id, ev.Initiator.ID(), ev.Reason.String())
	m.Close()
	owner := m.owner
	if owner == nil || owner.parent == nil {
		if m.onClose != nil {
			m.onClose(ev)
		}
		return
	}
	ev.Path = append(ev.Path, owner)
	if ev.Reason.Escape() {
		events.Submenu.Cascade(owner.id, ev.Reason.String(), len(ev.Path), true)
		owner.SetSelected(true)
		owner.parent.Focus()
		return
	}
	events.Submenu.Cascade(owner.id, ev.Reason.String(), len(ev.Path), false)
	owner.SetSelected(false)
	owner.parent.dispatchClose(ev)
}

func (m *Menu) surfaceConfig() surface.Config {
	p := m.Props()
	return surface.Config{
		AnchorCorner:  p.AnchorCorner,
		SurfaceCorner: p.MenuCorner,
		Anchor:        p.Anchor,
		Surface:       &m.box,
		TopLayer:      p.Fixed,
		Open:          p.Open,
		XOffset:       p.XOffset,
		YOffset:       p.YOffset,
		OnOpen:        func() { m.env.Loop.Post(m.opened) },
		BeforeClose:   m.beforeClose,
	}
}

func (m *Menu) opened() {
	m.lastFocused = m.env.Focus.Current()
	items := m.Items()
	if sel := SelectedItem(items); sel != nil {
		sel.SetSelected(false)
	}
	p := m.Props()
	switch p.DefaultFocus {
	case FocusFirstItem:
		if first := FirstSelectable(items); first != nil {
			first.SetSelected(true)
		}
		m.Focus()
	case FocusLastItem:
		if last := LastSelectable(items); last != nil {
			last.SetSelected(true)
		}
		m.Focus()
	case FocusNone:
	default:
		m.Focus()
	}

	if p.Quick || m.env.Animator == nil {
		m.emit(Opened)
		return
	}
	m.emit(Opening)
	m.env.Animator.AnimateOpen(m, func() { m.emit(Opened) })
}

func (m *Menu) beforeClose(ctx context.Context) error {
	done := make(chan struct{})
	m.env.Loop.Post(func() {
		m.typeahead.End()
		finish := func() {
			m.emit(Closed)
			close(done)
		}
		if m.Props().Quick || m.env.Animator == nil {
			finish()
			return
		}
		m.emit(Closing)
		m.env.Animator.AnimateClose(m, finish)
	})
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	m.env.Loop.Post(m.restoreFocus)
	return nil
}

func (m *Menu) restoreFocus() {
	if m.Props().SkipRestoreFocus || m.lastFocused == nil {
		return
	}
	m.env.Focus.Set(m.lastFocused)
}

// Once registers f to run on the next occurrence of ev.
func (m *Menu) Once(ev Event, f func()) {
	m.once[ev] = append(m.once[ev], f)
}

func (m *Menu) emit(ev Event) {
	events.Menu.Event(m.id, ev.String())
	if m.env.Listener != nil {
		m.env.Listener(m, ev)
	}
	pending := m.once[ev]
	delete(m.once, ev)
	for _, f := range pending {
		f()
	}
}
