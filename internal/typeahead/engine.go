// Package typeahead jumps the selection of a list to the item whose headline
// starts with what the user has just typed.
//
// A session starts on the first printable key and snapshots the list. Each
// further key extends the query and selects the nearest match after the
// current selection, so repeated presses of one letter cycle through the
// items sharing that initial. The session ends on a navigation, Enter or
// Escape key, when nothing matches, or when no key arrives within the buffer
// time.
package typeahead

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/atomicstack/popup-menu/internal/clock"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/loop"
)

// DefaultBufferTime is how long a session waits for the next key.
const DefaultBufferTime = 200 * time.Millisecond

// Item is a selectable list entry.
type Item interface {
	Headline() string
	Selected() bool
	SetSelected(bool)
	Disabled() bool
}

type record struct {
	index    int
	item     Item
	headline string
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock sets the clock used for the buffer timeout.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.timeout = clock.NewSlot(c) }
}

// WithBufferTime sets the buffer time source. It is read on every key.
func WithBufferTime(f func() time.Duration) Option {
	return func(e *Engine) {
		if f != nil {
			e.bufferTime = f
		}
	}
}

// Engine is the typeahead state machine. It is not safe for concurrent use;
// drive it from the loop that owns the items.
type Engine struct {
	items      func() []Item
	bufferTime func() time.Duration
	timeout    *clock.Slot
	loop       loop.Loop
	caser      cases.Caser

	active  bool
	records []record
	anchor  *record
	buffer  string
	stamp   uint64
}

// New returns an idle engine over the given item provider. Timeout expiry
// is posted to l, which must be the sequence that drives HandleKey.
func New(items func() []Item, l loop.Loop, opts ...Option) (*Engine, error) {
	if l == nil {
		return nil, loop.ErrMissingLoop
	}
	e := &Engine{
		items:      items,
		bufferTime: func() time.Duration { return DefaultBufferTime },
		loop:       l,
		caser:      cases.Lower(language.Und),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.timeout == nil {
		e.timeout = clock.NewSlot(nil)
	}
	return e, nil
}

// Active reports whether a session is running.
func (e *Engine) Active() bool { return e.active }

// Buffer returns the current query.
func (e *Engine) Buffer() string { return e.buffer }

// HandleKey feeds one keystroke. It reports whether the key was consumed as
// part of a query; terminators and ignored keys return false so the caller
// can still act on them.
func (e *Engine) HandleKey(k Key) bool {
	if !e.active {
		if !k.starter() {
			return false
		}
		if !e.begin() {
			return false
		}
	} else if k.terminator() {
		e.end("terminator")
		return false
	} else if !k.character() {
		return false
	}
	e.typeahead(k)
	return true
}

// End stops a running session, keeping the current selection.
func (e *Engine) End() {
	if e.active {
		e.end("cancelled")
	}
}

func (e *Engine) begin() bool {
	items := e.items()
	if len(items) == 0 {
		return false
	}
	e.records = make([]record, len(items))
	e.anchor = nil
	for i, item := range items {
		e.records[i] = record{index: i, item: item, headline: e.normalize(item.Headline())}
		if e.anchor == nil && item.Selected() {
			e.anchor = &e.records[i]
		}
	}
	if e.anchor != nil {
		e.anchor.item.SetSelected(false)
	}
	e.active = true
	e.buffer = ""
	anchorIndex := -1
	if e.anchor != nil {
		anchorIndex = e.anchor.index
	}
	events.Typeahead.Begin(len(e.records), anchorIndex)
	return true
}

func (e *Engine) typeahead(k Key) {
	e.stamp++
	stamp := e.stamp
	e.timeout.Schedule(e.bufferTime(), func() {
		e.loop.Post(func() { e.expire(stamp) })
	})

	ch := " "
	if k.Kind == KeyRune {
		ch = e.caser.String(string(k.Rune))
	}
	e.buffer += ch

	matches := make([]*record, 0, len(e.records))
	for i := range e.records {
		r := &e.records[i]
		if !r.item.Disabled() && strings.HasPrefix(r.headline, e.buffer) {
			matches = append(matches, r)
		}
	}

	if len(matches) == 0 {
		events.Typeahead.Miss(e.buffer)
		e.timeout.Cancel()
		if e.anchor != nil {
			e.anchor.item.SetSelected(false)
		}
		e.end("miss")
		return
	}

	n := len(e.records)
	rebase := func(r *record) int {
		// nothing selected: list order
		if e.anchor == nil {
			return r.index
		}
		return (r.index - e.anchor.index + n) % n
	}
	sort.SliceStable(matches, func(i, j int) bool { return rebase(matches[i]) < rebase(matches[j]) })

	next := matches[0]
	if next == e.anchor && len([]rune(e.buffer)) == 1 && len(matches) > 1 {
		next = matches[1]
	}

	if e.anchor != nil {
		e.anchor.item.SetSelected(false)
	}
	e.anchor = next
	next.item.SetSelected(true)
	events.Typeahead.Select(e.buffer, next.index, next.headline)
}

func (e *Engine) expire(stamp uint64) {
	if !e.active || stamp != e.stamp {
		return
	}
	e.end("timeout")
}

func (e *Engine) end(reason string) {
	e.timeout.Cancel()
	e.active = false
	e.buffer = ""
	e.records = nil
	e.anchor = nil
	events.Typeahead.End(reason)
}

func (e *Engine) normalize(s string) string {
	return e.caser.String(strings.TrimSpace(s))
}
