package menu

import (
	"github.com/atomicstack/popup-menu/internal/typeahead"
)

// Row is anything a menu lists. Only Items take part in selection.
type Row interface {
	Anchor() *Box
}

// Item is a selectable menu row.
type Item interface {
	typeahead.Item
	Row
	ID() string
	Value() string
	Parent() *Menu
	// Click is pointer activation.
	Click()
	// HandleKey handles a key while the item is the menu's active item.
	HandleKey(k Key) bool
	// Close closes anything the item owns, such as a submenu.
	Close()
	setParent(m *Menu)
}

type itemBase struct {
	box      Box
	id       string
	headline string
	value    string
	disabled bool
	selected bool
	parent   *Menu
}

func (b *itemBase) Anchor() *Box       { return &b.box }
func (b *itemBase) ID() string         { return b.id }
func (b *itemBase) Headline() string   { return b.headline }
func (b *itemBase) Value() string      { return b.value }
func (b *itemBase) Selected() bool     { return b.selected }
func (b *itemBase) SetSelected(v bool) { b.selected = v }
func (b *itemBase) Disabled() bool     { return b.disabled }
func (b *itemBase) SetDisabled(v bool) { b.disabled = v }
func (b *itemBase) Parent() *Menu      { return b.parent }
func (b *itemBase) setParent(m *Menu)  { b.parent = m }

// closeKey maps the keys a leaf closes its menu with.
func closeKey(k Key) (string, bool) {
	switch k.Kind {
	case typeahead.KeyEscape:
		return KeyEscape, true
	case typeahead.KeySpace:
		return KeySpace, true
	case typeahead.KeyEnter:
		return KeyEnter, true
	}
	return "", false
}

// Entry is a leaf item. Activating it asks the enclosing menus to close.
type Entry struct {
	itemBase
	KeepOpenOnClick bool
	// Copy asks the program to copy Value to the clipboard when selected.
	Copy bool
}

// NewEntry returns a leaf item.
func NewEntry(id, headline, value string) *Entry {
	return &Entry{itemBase: itemBase{id: id, headline: headline, value: value}}
}

// Click implements Item.
func (e *Entry) Click() {
	if e.disabled || e.KeepOpenOnClick || e.parent == nil {
		return
	}
	e.parent.dispatchClose(newCloseEvent(e, Reason{Kind: ClickSelection}))
}

// HandleKey implements Item.
func (e *Entry) HandleKey(k Key) bool {
	return leafKey(e, k)
}

// Close implements Item.
func (e *Entry) Close() {}

func leafKey(it Item, k Key) bool {
	key, ok := closeKey(k)
	if !ok || it.Parent() == nil {
		return false
	}
	if key != KeyEscape && it.Disabled() {
		return false
	}
	it.Parent().dispatchClose(newCloseEvent(it, Reason{Kind: Keydown, Key: key}))
	return true
}

// Divider separates groups of items. It is never selectable.
type Divider struct {
	box Box
}

// NewDivider returns a divider row.
func NewDivider() *Divider { return &Divider{} }

// Anchor implements Row.
func (d *Divider) Anchor() *Box { return &d.box }
