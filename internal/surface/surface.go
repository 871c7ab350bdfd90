// Package surface drives the open/close lifecycle of a floating surface.
//
// A Controller is updated once per host cycle. It diffs the host's current
// Config against the last applied one and, only when something relevant
// changed, runs one of two sequences:
//
//	open:  reveal at zero opacity, wait for layout, measure, solve, show, OnOpen
//	close: BeforeClose (awaited in full), hide
//
// Updates are serialised. An update that arrives while a close animation is
// in flight waits for it to finish and then diffs against the state the close
// left behind, so intermediate configurations collapse into the latest one.
package surface

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/atomicstack/popup-menu/internal/geometry"
	"github.com/atomicstack/popup-menu/internal/logging/events"
)

// Element is anything that can be measured. Implementations must be
// comparable (pointer types) since identity changes are part of the diff.
type Element interface {
	BoundingRect() geometry.Rect
	Direction() geometry.Direction
}

// Host owns rendering. RequestUpdate asks for a new frame; UpdateComplete
// blocks until every requested frame has been laid out.
type Host interface {
	RequestUpdate()
	UpdateComplete(ctx context.Context) error
	Viewport() geometry.Size
}

// Config is the host's view of the surface for one cycle.
type Config struct {
	AnchorCorner  geometry.Corner
	SurfaceCorner geometry.Corner
	Anchor        Element
	Surface       Element
	TopLayer      bool
	Open          bool
	XOffset       int
	YOffset       int
	OnOpen        func()
	BeforeClose   func(ctx context.Context) error
}

// Display is the surface's visibility.
type Display int

const (
	Hidden Display = iota
	Visible
)

func (d Display) String() string {
	if d == Visible {
		return "block"
	}
	return "none"
}

// Styles is what the host applies to the surface when painting.
type Styles struct {
	Display    Display
	Opacity    float64
	Positioned bool
	Placement  geometry.Result
}

type snapshot struct {
	open          bool
	anchorCorner  geometry.Corner
	surfaceCorner geometry.Corner
	anchor        Element
	surface       Element
	topLayer      bool
	xOffset       int
	yOffset       int
}

func (s snapshot) differs(cfg Config) bool {
	return s.open != cfg.Open ||
		s.anchorCorner != cfg.AnchorCorner ||
		s.surfaceCorner != cfg.SurfaceCorner ||
		s.anchor != cfg.Anchor ||
		s.surface != cfg.Surface ||
		s.topLayer != cfg.TopLayer ||
		s.xOffset != cfg.XOffset ||
		s.yOffset != cfg.YOffset
}

func snapshotOf(cfg Config) snapshot {
	return snapshot{
		open:          cfg.Open,
		anchorCorner:  cfg.AnchorCorner,
		surfaceCorner: cfg.SurfaceCorner,
		anchor:        cfg.Anchor,
		surface:       cfg.Surface,
		topLayer:      cfg.TopLayer,
		xOffset:       cfg.XOffset,
		yOffset:       cfg.YOffset,
	}
}

// Option customises a Controller.
type Option func(*Controller)

// WithSolver replaces geometry.Solve.
func WithSolver(solve func(geometry.Request) geometry.Result) Option {
	return func(c *Controller) {
		if solve != nil {
			c.solve = solve
		}
	}
}

// WithID labels trace output.
func WithID(id string) Option {
	return func(c *Controller) {
		c.id = id
	}
}

// Controller owns the display state and the last applied snapshot. Nothing
// else writes either.
type Controller struct {
	id    string
	host  Host
	props func() Config
	solve func(geometry.Request) geometry.Result

	busy     chan struct{}
	wg       sync.WaitGroup
	inflight atomic.Int64

	mu     sync.Mutex
	styles Styles
	last   snapshot
}

// New creates a controller. props is read at the start of every update.
func New(host Host, props func() Config, opts ...Option) *Controller {
	c := &Controller{
		id:    "surface",
		host:  host,
		props: props,
		solve: geometry.Solve,
		busy:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Styles returns the styles the host should paint with.
func (c *Controller) Styles() Styles {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.styles
}

// Request runs Update on its own goroutine. Errors are traced.
func (c *Controller) Request(ctx context.Context) {
	c.wg.Add(1)
	c.inflight.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.inflight.Add(-1)
		if err := c.Update(ctx); err != nil {
			events.Surface.Error(c.id, err)
		}
	}()
}

// Busy reports whether any Request is still running.
func (c *Controller) Busy() bool {
	return c.inflight.Load() > 0
}

// Wait blocks until every Request has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Update runs one host cycle: diff, then open or close when needed.
func (c *Controller) Update(ctx context.Context) error {
	select {
	case c.busy <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-c.busy }()

	cfg := c.props()

	c.mu.Lock()
	prev := c.last
	c.mu.Unlock()

	if !prev.differs(cfg) {
		return nil
	}
	if cfg.Anchor == nil || cfg.Surface == nil {
		events.Surface.Skip(c.id, "missing anchor or surface")
		return nil
	}

	if cfg.Open {
		return c.open(ctx, prev, cfg)
	}

	c.mu.Lock()
	c.last.open = false
	c.mu.Unlock()
	if prev.open {
		return c.close(ctx, cfg)
	}
	return nil
}

func (c *Controller) open(ctx context.Context, prev snapshot, cfg Config) error {
	c.mu.Lock()
	c.last = snapshotOf(cfg)
	c.mu.Unlock()
	events.Surface.Open(c.id, cfg.AnchorCorner.String(), cfg.SurfaceCorner.String(), cfg.TopLayer)

	if err := c.position(ctx, cfg); err != nil {
		c.mu.Lock()
		c.last = prev
		c.styles = Styles{Display: Hidden}
		c.mu.Unlock()
		c.host.RequestUpdate()
		return fmt.Errorf("position %s: %w", c.id, err)
	}
	if cfg.OnOpen != nil {
		cfg.OnOpen()
	}
	return nil
}

func (c *Controller) position(ctx context.Context, cfg Config) error {
	c.setStyles(Styles{Display: Visible, Opacity: 0})
	c.host.RequestUpdate()
	if err := c.host.UpdateComplete(ctx); err != nil {
		return err
	}

	req := geometry.Request{
		AnchorRect:    cfg.Anchor.BoundingRect(),
		SurfaceRect:   cfg.Surface.BoundingRect(),
		AnchorCorner:  cfg.AnchorCorner,
		SurfaceCorner: cfg.SurfaceCorner,
		TopLayer:      cfg.TopLayer,
		XOffset:       cfg.XOffset,
		YOffset:       cfg.YOffset,
		Direction:     cfg.Surface.Direction(),
		Viewport:      c.host.Viewport(),
	}
	res := c.solve(req)
	events.Surface.Positioned(c.id, map[string]interface{}{
		"anchor":      req.AnchorRect,
		"size":        req.SurfaceRect.Size(),
		"viewport":    req.Viewport,
		"direction":   req.Direction.String(),
		"blockSide":   res.BlockSide.String(),
		"blockInset":  res.BlockInset,
		"inlineSide":  res.InlineSide.String(),
		"inlineInset": res.InlineInset,
	})

	c.setStyles(Styles{Display: Visible, Opacity: 1, Positioned: true, Placement: res})
	c.host.RequestUpdate()
	return nil
}

func (c *Controller) close(ctx context.Context, cfg Config) error {
	events.Surface.Close(c.id)
	var err error
	if cfg.BeforeClose != nil {
		err = cfg.BeforeClose(ctx)
	}
	c.setStyles(Styles{Display: Hidden})
	c.host.RequestUpdate()
	events.Surface.Hidden(c.id)
	if err != nil {
		return fmt.Errorf("before close %s: %w", c.id, err)
	}
	return nil
}

func (c *Controller) setStyles(s Styles) {
	c.mu.Lock()
	c.styles = s
	c.mu.Unlock()
}
