package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popup-menu/internal/clock"
	"github.com/atomicstack/popup-menu/internal/geometry"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/loop"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/menufile"
	"github.com/atomicstack/popup-menu/internal/surface"
	"github.com/atomicstack/popup-menu/internal/theme"
	"github.com/atomicstack/popup-menu/internal/typeahead"
	"github.com/atomicstack/popup-menu/internal/ui/command"
	"github.com/atomicstack/popup-menu/internal/ui/state"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configure a Model.
type Options struct {
	Definition   *menufile.Definition
	ButtonLabel  string
	Width        int
	Height       int
	AnchorX      int
	AnchorY      int
	RTL          bool
	ShowFooter   bool
	OpenOnStart  bool
	DefaultFocus menu.DefaultFocus
	// Root and Submenu are handed to menufile.Build.
	Root    func(p *menu.Props)
	Submenu func(s *menu.SubmenuItem)
	Clock   clock.Clock
	Context context.Context
}

// Result is the leaf the user picked.
type Result struct {
	ID    string
	Label string
	Value string
	Copy  bool
}

// Model implements the Bubble Tea model hosting a menu tree.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	inbox  *loop.Chan
	frames *surface.Frames
	focus  *menu.Focus
	tree   *menufile.Tree
	root   *menu.Menu
	button *menu.Button
	bus    *command.Bus
	keys   KeyMap
	help   help.Model

	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	anchorX      int
	anchorY      int
	rtl          bool
	showFooter   bool
	openOnStart  bool
	openPending  bool
	defaultFocus menu.DefaultFocus

	anims    map[*menu.Menu]*animation
	needTick bool
	ticking  bool
	now      func() time.Time
	scroll   map[*menu.Menu]*state.Scroll
	hovered  map[*menu.SubmenuItem]bool

	result    *Result
	dismissed bool
	quitting  bool
	errMsg    string
	pending   []tea.Cmd

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the menu tree described by opts and wires it to the model.
func NewModel(opts Options) (*Model, error) {
	def := opts.Definition
	if def == nil {
		def = menufile.Default()
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	m := &Model{
		ctx:          ctx,
		cancel:       cancel,
		inbox:        loop.NewChan(256),
		focus:        &menu.Focus{},
		bus:          command.New(),
		keys:         DefaultKeyMap(opts.RTL),
		help:         help.New(),
		anchorX:      opts.AnchorX,
		anchorY:      opts.AnchorY,
		rtl:          opts.RTL,
		showFooter:   opts.ShowFooter,
		openOnStart:  opts.OpenOnStart,
		defaultFocus: opts.DefaultFocus,
		anims:        make(map[*menu.Menu]*animation),
		now:          time.Now,
		scroll:       make(map[*menu.Menu]*state.Scroll),
		hovered:      make(map[*menu.SubmenuItem]bool),
	}
	m.frames = surface.NewFrames(func(gen uint64) {
		m.inbox.Post(func() { m.settleFrame(gen) })
	})
	if opts.Width > 0 {
		m.width, m.fixedWidth = opts.Width, true
	}
	if opts.Height > 0 {
		m.height, m.fixedHeight = opts.Height, true
	}
	m.frames.SetViewport(m.viewport())

	env := menu.Env{
		Loop:     m.inbox,
		Clock:    opts.Clock,
		Host:     m.frames,
		Focus:    m.focus,
		Animator: m,
		Listener: m.onMenuEvent,
		Context:  ctx,
	}
	tree, err := menufile.Build(def, env, menufile.Options{Root: opts.Root, Submenu: opts.Submenu})
	if err != nil {
		cancel()
		return nil, err
	}
	label := opts.ButtonLabel
	if label == "" {
		label = def.Title
	}
	if label == "" {
		label = "Menu"
	}
	button, err := menu.NewButton(label, tree.Root)
	if err != nil {
		cancel()
		return nil, err
	}
	m.tree, m.root, m.button = tree, tree.Root, button
	m.root.OnClose(m.onRootClose)
	m.button.Focus()
	m.applyDirection()
	m.layout()
	m.registerHandlers()
	return m, nil
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.openOnStart {
		if m.viewportKnown() {
			m.openRoot()
		} else {
			m.openPending = true
		}
	}
	return waitForInbox(m.inbox)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(inboxMsg{}):          m.handleInboxMsg,
		reflect.TypeOf(animTickMsg{}):       m.handleAnimTickMsg,
		reflect.TypeOf(copiedMsg{}):         m.handleCopiedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.layout()
	if len(m.pending) > 0 {
		cmds = append(cmds, m.pending...)
		m.pending = nil
	}
	if m.needTick && !m.ticking {
		m.needTick = false
		m.ticking = true
		cmds = append(cmds, animTick())
	}
	if m.quitting {
		m.cancel()
		cmds = append(cmds, tea.Quit)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

type inboxMsg struct {
	fn func()
}

func waitForInbox(c *loop.Chan) tea.Cmd {
	return func() tea.Msg {
		return inboxMsg{fn: <-c.C}
	}
}

// handleInboxMsg runs a posted continuation and anything else already
// queued, then waits for more.
func (m *Model) handleInboxMsg(msg tea.Msg) tea.Cmd {
	in, ok := msg.(inboxMsg)
	if !ok {
		return nil
	}
	m.inbox.Run(in.fn)
	for drained := 0; drained < cap(m.inbox.C); drained++ {
		select {
		case fn := <-m.inbox.C:
			m.inbox.Run(fn)
			continue
		default:
		}
		break
	}
	if m.quitting {
		return nil
	}
	return waitForInbox(m.inbox)
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		m.dismissed = true
		m.quitting = true
		return nil
	}
	k := translateKey(keyMsg)
	if m.focus.HandleKey(k) {
		return nil
	}
	if k.Kind == typeahead.KeyEscape {
		if m.root.Open() {
			m.dismissed = true
			m.root.Close()
			return nil
		}
		m.dismissed = true
		m.quitting = true
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.frames.SetViewport(m.viewport())
	m.help.Width = m.width
	if m.openPending && m.viewportKnown() {
		m.openPending = false
		m.openRoot()
	}
	return nil
}

type copiedMsg struct {
	err error
}

func (m *Model) handleCopiedMsg(msg tea.Msg) tea.Cmd {
	copied, ok := msg.(copiedMsg)
	if !ok {
		return nil
	}
	if copied.err != nil {
		m.errMsg = copied.err.Error()
	}
	m.quitting = true
	return nil
}

func (m *Model) openRoot() {
	focus := m.defaultFocus
	m.root.Update(func(p *menu.Props) {
		p.DefaultFocus = focus
		p.Open = true
	})
}

func (m *Model) onRootClose(ev menu.CloseEvent) {
	if ev.Reason.Escape() {
		m.dismissed = true
		return
	}
	entry, ok := ev.Initiator.(*menu.Entry)
	if !ok {
		return
	}
	m.result = &Result{ID: entry.ID(), Label: entry.Headline(), Value: entry.Value(), Copy: entry.Copy}
}

func (m *Model) onMenuEvent(mm *menu.Menu, ev menu.Event) {
	if mm != m.root || ev != menu.Closed {
		return
	}
	if m.result != nil && m.result.Copy {
		m.pending = append(m.pending, m.bus.Execute(command.Request{
			ID:      m.result.ID,
			Label:   m.result.Label,
			Handler: copyToClipboard(m.result.Value),
		}))
		return
	}
	if m.result == nil {
		m.dismissed = true
	}
	m.quitting = true
}

func (m *Model) settleFrame(gen uint64) {
	m.layout()
	m.frames.Settle(gen)
	visible := 0
	m.root.Walk(func(mm *menu.Menu) {
		if mm.Styles().Display == surface.Visible {
			visible++
		}
	})
	events.UI.Frame(gen, visible)
}

// viewport is the area surfaces may occupy, above the footer.
func (m *Model) viewport() geometry.Size {
	height := m.height
	if m.showFooter && height > 1 {
		height--
	}
	return geometry.Size{Width: m.width, Height: height}
}

func (m *Model) viewportKnown() bool {
	return m.width > 0 && m.height > 0
}

func (m *Model) applyDirection() {
	dir := geometry.LTR
	if m.rtl {
		dir = geometry.RTL
	}
	m.button.Anchor().SetDirection(dir)
	m.root.Walk(func(mm *menu.Menu) {
		mm.Surface().SetDirection(dir)
		for _, row := range mm.Rows() {
			row.Anchor().SetDirection(dir)
		}
	})
}

// Root returns the root menu.
func (m *Model) Root() *menu.Menu { return m.root }

// Tree returns the built menu tree.
func (m *Model) Tree() *menufile.Tree { return m.tree }

// Button returns the trigger.
func (m *Model) Button() *menu.Button { return m.button }

// Focus returns the keyboard focus tracker.
func (m *Model) Focus() *menu.Focus { return m.focus }

// Result returns the selected leaf, or nil when the menu was dismissed.
func (m *Model) Result() *Result { return m.result }

// Dismissed reports whether the user closed the menu without a selection.
func (m *Model) Dismissed() bool { return m.dismissed && m.result == nil }

// Quitting reports whether the model has asked the program to exit.
func (m *Model) Quitting() bool { return m.quitting }

// Err returns the last side effect error, if any.
func (m *Model) Err() string { return m.errMsg }

// Idle reports whether nothing is in flight: no surface update, queued
// continuation or running animation.
func (m *Model) Idle() bool {
	return !m.root.Busy() && m.inbox.Pending() == 0 && len(m.anims) == 0
}
