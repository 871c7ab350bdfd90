package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
// Commands run on their own goroutines, as they would under a tea.Program,
// and their messages are applied when the test pumps.
type Harness struct {
	model *Model
	msgs  chan tea.Msg
	quit  bool
}

// NewHarness creates a harness for the provided model and runs its Init
// command.
func NewHarness(model *Model) *Harness {
	h := &Harness{model: model, msgs: make(chan tea.Msg, 256)}
	if model != nil {
		h.run(model.Init())
	}
	return h
}

// Send routes a message through the model and starts any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil || msg == nil {
		return
	}
	switch msg := msg.(type) {
	case tea.QuitMsg:
		h.quit = true
		return
	case tea.BatchMsg:
		for _, cmd := range msg {
			h.run(cmd)
		}
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.run(cmd)
}

func (h *Harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		if msg := cmd(); msg != nil {
			h.msgs <- msg
		}
	}()
}

// Pump applies command results until cond holds or timeout elapses, and
// reports whether cond was met.
func (h *Harness) Pump(timeout time.Duration, cond func(*Model) bool) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		if cond(h.model) {
			return true
		}
		select {
		case msg := <-h.msgs:
			h.Send(msg)
		case <-deadline.C:
			return cond(h.model)
		}
	}
}

// Settle pumps until no surface is mid-transition, nothing is queued on the
// inbox and no animation is running.
func (h *Harness) Settle(timeout time.Duration) bool {
	return h.Pump(timeout, func(m *Model) bool { return m.Idle() })
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
