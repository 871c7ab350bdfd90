package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/typeahead"
)

// KeyMap lists the bindings the footer advertises.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Home   key.Binding
	End    key.Binding
	Open   key.Binding
	Back   key.Binding
	Select key.Binding
	Space  key.Binding
	Close  key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the bindings for a writing direction.
func DefaultKeyMap(rtl bool) KeyMap {
	open, back := "right", "left"
	openHelp, backHelp := "→", "←"
	if rtl {
		open, back = back, open
		openHelp, backHelp = backHelp, openHelp
	}
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Home:   key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:    key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Open:   key.NewBinding(key.WithKeys(open), key.WithHelp(openHelp, "open")),
		Back:   key.NewBinding(key.WithKeys(back), key.WithHelp(backHelp, "back")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Space:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back, k.Select, k.Close}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.Open, k.Back, k.Select, k.Space},
		{k.Close, k.Quit},
	}
}

// translateKey maps a terminal key onto the menu key set. Arrow keys keep
// their physical meaning; submenu items mirror them for RTL themselves.
func translateKey(msg tea.KeyMsg) menu.Key {
	switch msg.Type {
	case tea.KeyUp:
		return menu.Key{Kind: typeahead.KeyUp}
	case tea.KeyDown:
		return menu.Key{Kind: typeahead.KeyDown}
	case tea.KeyLeft:
		return menu.Key{Kind: typeahead.KeyLeft}
	case tea.KeyRight:
		return menu.Key{Kind: typeahead.KeyRight}
	case tea.KeyHome:
		return menu.Key{Kind: typeahead.KeyHome}
	case tea.KeyEnd:
		return menu.Key{Kind: typeahead.KeyEnd}
	case tea.KeyEnter:
		return menu.Key{Kind: typeahead.KeyEnter}
	case tea.KeyEsc:
		return menu.Key{Kind: typeahead.KeyEscape}
	case tea.KeySpace:
		return typeahead.Rune(' ')
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return typeahead.Rune(msg.Runes[0])
		}
	}
	return menu.Key{Kind: typeahead.KeyOther}
}
