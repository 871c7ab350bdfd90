package menu

import (
	"errors"

	"github.com/atomicstack/popup-menu/internal/typeahead"
)

var (
	ErrMissingButton = errors.New("menu button: missing trigger element")
	ErrMissingMenu   = errors.New("menu button: missing menu element")
)

// Key is a keystroke delivered to menus, buttons and items.
type Key = typeahead.Key

// Event is a lifecycle notification.
type Event int

const (
	Opening Event = iota
	Opened
	Closing
	Closed
)

func (e Event) String() string {
	switch e {
	case Opening:
		return "opening"
	case Opened:
		return "opened"
	case Closing:
		return "closing"
	default:
		return "closed"
	}
}

// Listener observes lifecycle events of every menu in a tree.
type Listener func(m *Menu, ev Event)

// Animator plays open and close animations. done must be called exactly once,
// from the loop that owns the tree, when the animation finishes.
type Animator interface {
	AnimateOpen(m *Menu, done func())
	AnimateClose(m *Menu, done func())
}

// ReasonKind says why a close was requested.
type ReasonKind int

const (
	ClickSelection ReasonKind = iota
	Keydown
)

// Reason is why a close was requested. Key is set for Keydown.
type Reason struct {
	Kind ReasonKind
	Key  string
}

// Close keys.
const (
	KeyEscape = "Escape"
	KeySpace  = "Space"
	KeyEnter  = "Enter"
)

func (r Reason) String() string {
	if r.Kind == ClickSelection {
		return "CLICK_SELECTION"
	}
	return "KEYDOWN:" + r.Key
}

// Escape reports whether the close was triggered by the Escape key.
func (r Reason) Escape() bool {
	return r.Kind == Keydown && r.Key == KeyEscape
}

// CloseEvent travels from the initiating item up through every enclosing
// menu. Path starts with the initiator; each submenu item it passes through
// appends itself.
type CloseEvent struct {
	Initiator Item
	Reason    Reason
	Path      []Item
}

func newCloseEvent(initiator Item, reason Reason) CloseEvent {
	return CloseEvent{Initiator: initiator, Reason: reason, Path: []Item{initiator}}
}
