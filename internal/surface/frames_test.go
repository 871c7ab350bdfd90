package surface

import (
	"context"
	"testing"
	"time"

	"github.com/atomicstack/popup-menu/internal/geometry"
)

func TestFramesUpdateCompleteWaitsForSettle(t *testing.T) {
	var requested []uint64
	f := NewFrames(func(gen uint64) { requested = append(requested, gen) })
	if err := f.UpdateComplete(context.Background()); err != nil {
		t.Fatalf("nothing pending should complete immediately: %v", err)
	}

	f.RequestUpdate()
	done := make(chan error, 1)
	go func() { done <- f.UpdateComplete(context.Background()) }()

	select {
	case <-done:
		t.Fatalf("UpdateComplete returned before settle")
	case <-time.After(10 * time.Millisecond):
	}
	f.Settle(f.Requested())
	if err := <-done; err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(requested) != 1 || requested[0] != 1 {
		t.Fatalf("unexpected request callbacks %v", requested)
	}
}

func TestFramesUpdateCompleteHonoursContext(t *testing.T) {
	f := NewFrames(nil)
	f.RequestUpdate()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if err := f.UpdateComplete(ctx); err == nil {
		t.Fatalf("expected deadline error")
	}
}

func TestFramesViewport(t *testing.T) {
	f := NewFrames(nil)
	f.SetViewport(geometry.Size{Width: 100, Height: 30})
	if got := f.Viewport(); got.Width != 100 || got.Height != 30 {
		t.Fatalf("unexpected viewport %+v", got)
	}
}
