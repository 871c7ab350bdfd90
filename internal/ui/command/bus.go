package command

import (
	"fmt"

	"github.com/atomicstack/popup-menu/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates a side effect triggered by a menu selection.
type Request struct {
	ID      string
	Label   string
	Handler func() tea.Msg
}

// Bus coordinates the execution of selection side effects.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a handler into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Handler()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
