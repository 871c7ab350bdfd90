package menu

import (
	"testing"
	"time"

	"github.com/atomicstack/popup-menu/internal/clock"
	"github.com/atomicstack/popup-menu/internal/geometry"
	"github.com/atomicstack/popup-menu/internal/loop"
	"github.com/atomicstack/popup-menu/internal/surface"
	"github.com/atomicstack/popup-menu/internal/typeahead"
)

type treeFixture struct {
	t      *testing.T
	loop   *loop.Chan
	clock  *clock.Manual
	focus  *Focus
	env    Env
	events []string

	root     *Menu
	button   *Button
	apple    *Entry
	fruit    *SubmenuItem
	fruitM   *Menu
	banana   *Entry
	cherry   *SubmenuItem
	cherryM  *Menu
	red      *Entry
	dark     *Entry
	disabled *Entry
	closes   []CloseEvent
}

// root: Apple, Fruit > (Banana, Cherry > (Red, Dark)), ---, Disabled
func newTree(t *testing.T) *treeFixture {
	t.Helper()
	f := &treeFixture{
		t:     t,
		loop:  loop.NewChan(1024),
		clock: clock.NewManual(),
		focus: &Focus{},
	}
	f.env = Env{
		Loop:  f.loop,
		Clock: f.clock,
		Host:  surface.Static{Size: geometry.Size{Width: 80, Height: 24}},
		Focus: f.focus,
		Listener: func(m *Menu, ev Event) {
			f.events = append(f.events, m.ID()+":"+ev.String())
		},
	}

	f.root = newMenu(t, "root", f.env)
	f.fruitM = newMenu(t, "fruit", f.env)
	f.cherryM = newMenu(t, "fruit/cherry", f.env)

	f.apple = NewEntry("apple", "Apple", "apple")
	f.banana = NewEntry("fruit/banana", "Banana", "banana")
	f.red = NewEntry("fruit/cherry/red", "Red", "red")
	f.dark = NewEntry("fruit/cherry/dark", "Dark", "dark")
	f.disabled = NewEntry("disabled", "Disabled", "")
	f.disabled.SetDisabled(true)
	f.fruit = NewSubmenuItem("fruit", "Fruit", f.fruitM)
	f.cherry = NewSubmenuItem("fruit/cherry", "Cherry", f.cherryM)

	f.cherryM.Add(f.red, f.dark)
	f.fruitM.Add(f.banana, f.cherry)
	f.root.Add(f.apple, f.fruit, NewDivider(), f.disabled)

	var err error
	f.button, err = NewButton("Menu", f.root)
	if err != nil {
		t.Fatalf("NewButton: %v", err)
	}
	f.button.Anchor().SetRect(geometry.NewRect(0, 0, 6, 1))
	f.root.Surface().SetRect(geometry.NewRect(0, 1, 20, 5))
	f.fruitM.Surface().SetRect(geometry.NewRect(20, 2, 14, 2))
	f.cherryM.Surface().SetRect(geometry.NewRect(34, 3, 10, 2))
	f.fruit.Anchor().SetRect(geometry.NewRect(0, 2, 20, 1))
	f.cherry.Anchor().SetRect(geometry.NewRect(20, 3, 14, 1))
	f.root.OnClose(func(ev CloseEvent) { f.closes = append(f.closes, ev) })
	f.button.Focus()
	return f
}

func newMenu(t *testing.T, id string, env Env) *Menu {
	t.Helper()
	m, err := New(id, env)
	if err != nil {
		t.Fatalf("New(%q): %v", id, err)
	}
	return m
}

// settle drains the loop until no surface update is in flight.
func (f *treeFixture) settle() {
	f.t.Helper()
	f.pumpUntil(func() bool { return !f.root.Busy() && len(f.loop.C) == 0 })
}

func (f *treeFixture) pumpUntil(done func() bool) {
	f.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		select {
		case fn := <-f.loop.C:
			fn()
			continue
		default:
		}
		if done() {
			return
		}
		if time.Now().After(deadline) {
			f.t.Fatalf("menu tree did not settle")
		}
		time.Sleep(time.Millisecond)
	}
}

func (f *treeFixture) openAll() {
	f.t.Helper()
	f.root.Show()
	f.settle()
	f.fruit.Click()
	f.settle()
	f.cherry.Click()
	f.settle()
}

func key(kind typeahead.KeyKind) Key { return Key{Kind: kind} }

func selectedIDs(m *Menu) []string {
	var ids []string
	for _, it := range m.Items() {
		if it.Selected() {
			ids = append(ids, it.ID())
		}
	}
	return ids
}
