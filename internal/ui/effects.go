package ui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

var writeClipboard = clipboard.WriteAll

func copyToClipboard(value string) func() tea.Msg {
	return func() tea.Msg {
		return copiedMsg{err: writeClipboard(value)}
	}
}
