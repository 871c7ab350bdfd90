package typeahead

import (
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/popup-menu/internal/clock"
	"github.com/atomicstack/popup-menu/internal/loop"
)

type fakeItem struct {
	headline string
	selected bool
	disabled bool
}

func (f *fakeItem) Headline() string   { return f.headline }
func (f *fakeItem) Selected() bool     { return f.selected }
func (f *fakeItem) SetSelected(v bool) { f.selected = v }
func (f *fakeItem) Disabled() bool     { return f.disabled }

func newItems(headlines ...string) []*fakeItem {
	items := make([]*fakeItem, len(headlines))
	for i, h := range headlines {
		items[i] = &fakeItem{headline: h}
	}
	return items
}

func provider(items []*fakeItem) func() []Item {
	return func() []Item {
		out := make([]Item, len(items))
		for i, it := range items {
			out[i] = it
		}
		return out
	}
}

func selected(items []*fakeItem) []string {
	var out []string
	for _, it := range items {
		if it.selected {
			out = append(out, it.headline)
		}
	}
	return out
}

// newEngine drives the engine from the test goroutine: the manual clock fires
// on Advance, so expiry can run inline.
func newEngine(items []*fakeItem) (*Engine, *clock.Manual) {
	clk := clock.NewManual()
	e, err := New(provider(items), loop.Inline{}, WithClock(clk))
	if err != nil {
		panic(err)
	}
	return e, clk
}

func TestRepeatedInitialCyclesThroughMatches(t *testing.T) {
	items := newItems("Apple", "Apricot", "Banana")
	e, clk := newEngine(items)

	want := []string{"Apple", "Apricot", "Apple"}
	for i, w := range want {
		if !e.HandleKey(Rune('a')) {
			t.Fatalf("press %d: key not consumed", i)
		}
		got := selected(items)
		if len(got) != 1 || got[0] != w {
			t.Fatalf("press %d: expected %s selected, got %v", i, w, got)
		}
		clk.Advance(DefaultBufferTime)
		if e.Active() {
			t.Fatalf("press %d: session should have timed out", i)
		}
	}
}

func TestSingleMatchWrapsToItself(t *testing.T) {
	items := newItems("Apple", "Banana", "Cherry")
	e, clk := newEngine(items)

	for i := 0; i < 2; i++ {
		e.HandleKey(Rune('b'))
		if got := selected(items); len(got) != 1 || got[0] != "Banana" {
			t.Fatalf("press %d: expected Banana selected, got %v", i, got)
		}
		clk.Advance(DefaultBufferTime)
	}
}

func TestLongerQueryNarrows(t *testing.T) {
	items := newItems("Apple", "Apricot", "Banana")
	e, _ := newEngine(items)

	e.HandleKey(Rune('A'))
	e.HandleKey(Rune('p'))
	e.HandleKey(Rune('r'))
	if got := selected(items); len(got) != 1 || got[0] != "Apricot" {
		t.Fatalf("expected Apricot, got %v", got)
	}
	if e.Buffer() != "apr" {
		t.Fatalf("expected lowercased buffer, got %q", e.Buffer())
	}
}

func TestNoMatchClearsSelectionAndEnds(t *testing.T) {
	items := newItems("Apple", "Apricot", "Banana")
	items[1].selected = true
	e, clk := newEngine(items)

	if e.HandleKey(Rune('z')) != true {
		t.Fatalf("expected key to be consumed")
	}
	if got := selected(items); len(got) != 0 {
		t.Fatalf("expected selection cleared, got %v", got)
	}
	if e.Active() {
		t.Fatalf("expected session ended")
	}
	if clk.Pending() != 0 {
		t.Fatalf("expected timeout cancelled, %d pending", clk.Pending())
	}
}

func TestTimeoutKeepsSelection(t *testing.T) {
	items := newItems("Apple", "Banana")
	e, clk := newEngine(items)

	e.HandleKey(Rune('b'))
	clk.Advance(DefaultBufferTime - time.Millisecond)
	if !e.Active() {
		t.Fatalf("session ended early")
	}
	clk.Advance(time.Millisecond)
	if e.Active() {
		t.Fatalf("session should have ended")
	}
	if got := selected(items); len(got) != 1 || got[0] != "Banana" {
		t.Fatalf("expected Banana kept, got %v", got)
	}
}

func TestKeystrokeResetsTimeout(t *testing.T) {
	items := newItems("Banana", "Bandana")
	e, clk := newEngine(items)

	e.HandleKey(Rune('b'))
	clk.Advance(150 * time.Millisecond)
	e.HandleKey(Rune('a'))
	clk.Advance(150 * time.Millisecond)
	if !e.Active() {
		t.Fatalf("second key should have reset the timeout")
	}
	if e.Buffer() != "ba" {
		t.Fatalf("unexpected buffer %q", e.Buffer())
	}
}

func TestTerminatorsEndSession(t *testing.T) {
	for _, k := range []Key{{Kind: KeyEnter}, {Kind: KeyEscape}, {Kind: KeyUp}, {Kind: KeyRight}} {
		items := newItems("Apple", "Banana")
		e, _ := newEngine(items)
		e.HandleKey(Rune('b'))
		if e.HandleKey(k) {
			t.Fatalf("%s: terminator should not be consumed", k)
		}
		if e.Active() || e.Buffer() != "" {
			t.Fatalf("%s: session still running", k)
		}
		if got := selected(items); len(got) != 1 || got[0] != "Banana" {
			t.Fatalf("%s: selection changed to %v", k, got)
		}
	}
}

func TestIdleIgnoresNonCharacterKeys(t *testing.T) {
	items := newItems("Apple")
	e, _ := newEngine(items)
	for _, k := range []Key{Rune(' '), {Kind: KeyEnter}, {Kind: KeyDown}, {Kind: KeyEscape}, {Kind: KeyOther}} {
		if e.HandleKey(k) {
			t.Fatalf("%s should not start a session", k)
		}
		if e.Active() {
			t.Fatalf("%s started a session", k)
		}
	}
}

func TestSpaceExtendsRunningQuery(t *testing.T) {
	items := newItems("New tab", "New window")
	e, _ := newEngine(items)
	for _, r := range "new w" {
		e.HandleKey(Rune(r))
	}
	if got := selected(items); len(got) != 1 || got[0] != "New window" {
		t.Fatalf("expected New window, got %v", got)
	}
}

func TestDisabledItemsNeverMatch(t *testing.T) {
	items := newItems("Apple", "Avocado")
	items[0].disabled = true
	e, _ := newEngine(items)
	e.HandleKey(Rune('a'))
	if got := selected(items); len(got) != 1 || got[0] != "Avocado" {
		t.Fatalf("expected Avocado, got %v", got)
	}
}

func TestEmptyItemsNeverStart(t *testing.T) {
	e, _ := newEngine(nil)
	if e.HandleKey(Rune('a')) || e.Active() {
		t.Fatalf("empty list must not start a session")
	}
}

func TestQueuedExpiryIgnoredAfterNewKey(t *testing.T) {
	items := newItems("Banana", "Bandana")
	clk := clock.NewManual()
	var queued []func()
	e, err := New(provider(items), postFunc(func(f func()) { queued = append(queued, f) }), WithClock(clk))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	e.HandleKey(Rune('b'))
	clk.Advance(DefaultBufferTime)
	if len(queued) != 1 {
		t.Fatalf("expected expiry posted to the loop, got %d", len(queued))
	}
	e.HandleKey(Rune('a'))
	queued[0]()
	if !e.Active() {
		t.Fatalf("expiry from an earlier key ended the session")
	}
}

type postFunc func(func())

func (p postFunc) Post(f func()) { p(f) }

func TestNewRequiresLoop(t *testing.T) {
	if _, err := New(provider(nil), nil); !errors.Is(err, loop.ErrMissingLoop) {
		t.Fatalf("expected ErrMissingLoop, got %v", err)
	}
}

func TestExpiryRunsOnOwningLoop(t *testing.T) {
	items := newItems("Apple", "Banana")
	l := loop.NewChan(4)
	e, err := New(provider(items), l, WithBufferTime(func() time.Duration { return time.Millisecond }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.HandleKey(Rune('b'))

	// the real timer only posts; the session ends when this goroutine runs it
	select {
	case f := <-l.C:
		if !e.Active() {
			t.Fatalf("session ended before the expiry was run")
		}
		l.Run(f)
	case <-time.After(2 * time.Second):
		t.Fatalf("expiry was never posted")
	}
	if e.Active() {
		t.Fatalf("expected session to end after expiry ran")
	}
	if got := selected(items); len(got) != 1 || got[0] != "Banana" {
		t.Fatalf("expiry must keep the selection, got %v", got)
	}
}

func TestNoSelectionMatchesInListOrder(t *testing.T) {
	items := newItems("Apple", "Banana", "Avocado")
	e, _ := newEngine(items)
	e.HandleKey(Rune('a'))
	if got := selected(items); len(got) != 1 || got[0] != "Apple" {
		t.Fatalf("expected the first match in list order, got %v", got)
	}
}
