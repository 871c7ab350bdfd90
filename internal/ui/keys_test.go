package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/typeahead"
)

func TestTranslateKey(t *testing.T) {
	cases := []struct {
		name string
		msg  tea.KeyMsg
		want menu.Key
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, menu.Key{Kind: typeahead.KeyUp}},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, menu.Key{Kind: typeahead.KeyDown}},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, menu.Key{Kind: typeahead.KeyLeft}},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, menu.Key{Kind: typeahead.KeyRight}},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, menu.Key{Kind: typeahead.KeyHome}},
		{"end", tea.KeyMsg{Type: tea.KeyEnd}, menu.Key{Kind: typeahead.KeyEnd}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, menu.Key{Kind: typeahead.KeyEnter}},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, menu.Key{Kind: typeahead.KeyEscape}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, typeahead.Rune(' ')},
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, typeahead.Rune('a')},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}, menu.Key{Kind: typeahead.KeyOther}},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, menu.Key{Kind: typeahead.KeyOther}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, menu.Key{Kind: typeahead.KeyOther}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, translateKey(tc.msg)); diff != "" {
				t.Fatalf("translateKey mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultKeyMapMirrorsForRTL(t *testing.T) {
	ltr := DefaultKeyMap(false)
	rtl := DefaultKeyMap(true)
	if got := ltr.Open.Keys(); len(got) != 1 || got[0] != "right" {
		t.Fatalf("expected right to open in LTR, got %v", got)
	}
	if got := rtl.Open.Keys(); len(got) != 1 || got[0] != "left" {
		t.Fatalf("expected left to open in RTL, got %v", got)
	}
	if got := rtl.Back.Keys(); got[0] != "right" {
		t.Fatalf("expected right to go back in RTL, got %v", got)
	}
	if len(ltr.FullHelp()) != 3 {
		t.Fatalf("expected three help columns")
	}
}
