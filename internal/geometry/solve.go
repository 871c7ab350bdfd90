// Package geometry places a floating surface next to an anchor.
//
// Solve works on two independent axes. For each axis the surface is offset
// from its anchor by the anchor extent when the two corners sit on opposite
// sides, plus the caller offset. Top-layer surfaces additionally add the
// anchor's distance from the viewport edge the surface is pinned to. Finally
// an out-of-bounds correction pulls the surface back inside the viewport:
//
//	correction = min(0, viewport - topLayerOffset - anchorOffset - surfaceExtent)
//
// The correction is never positive, so it can only move a surface towards
// the viewport.
package geometry

// Request carries everything Solve needs. It is immutable per call.
type Request struct {
	AnchorRect    Rect
	SurfaceRect   Rect
	AnchorCorner  Corner
	SurfaceCorner Corner
	TopLayer      bool
	XOffset       int
	YOffset       int
	Direction     Direction
	Viewport      Size
}

// Result pins the surface's BlockSide edge BlockInset cells from the matching
// edge, and likewise on the inline axis. Non top-layer insets are measured
// from the anchor's edges, top-layer insets from the viewport's.
type Result struct {
	BlockSide   Alignment
	BlockInset  int
	InlineSide  Alignment
	InlineInset int
}

// Axis holds the intermediate terms of one axis, exposed for tracing.
type Axis struct {
	AnchorOffset   int
	TopLayerOffset int
	Correction     int
	Inset          int
}

// Solve computes the surface insets. It is pure.
func Solve(req Request) Result {
	block, inline := SolveAxes(req)
	return Result{
		BlockSide:   req.SurfaceCorner.Block,
		BlockInset:  block.Inset,
		InlineSide:  req.SurfaceCorner.Inline,
		InlineInset: inline.Inset,
	}
}

// SolveAxes is Solve with the per-axis terms.
func SolveAxes(req Request) (block, inline Axis) {
	a, s := req.AnchorRect, req.SurfaceRect

	block.AnchorOffset = oppositeExtent(req.AnchorCorner.Block, req.SurfaceCorner.Block, a.Height) + req.YOffset
	inline.AnchorOffset = oppositeExtent(req.AnchorCorner.Inline, req.SurfaceCorner.Inline, a.Width) + req.XOffset

	if req.TopLayer {
		block.TopLayerOffset = blockViewportOffset(req.SurfaceCorner.Block, a, req.Viewport)
		inline.TopLayerOffset = inlineViewportOffset(req.SurfaceCorner.Inline, a, req.Viewport, req.Direction)
	}

	block.Correction = Correction(req.Viewport.Height, block.TopLayerOffset+block.AnchorOffset, s.Height)
	inline.Correction = Correction(req.Viewport.Width, inline.TopLayerOffset+inline.AnchorOffset, s.Width)

	block.Inset = block.TopLayerOffset + block.AnchorOffset + block.Correction
	inline.Inset = inline.TopLayerOffset + inline.AnchorOffset + inline.Correction
	return block, inline
}

// Correction returns how far a surface of the given extent, placed offset
// cells from an edge, must move back to stay inside viewport. It is zero or
// negative.
func Correction(viewport, offset, extent int) int {
	return min(0, viewport-offset-extent)
}

func oppositeExtent(anchor, surface Alignment, extent int) int {
	if anchor != surface {
		return extent
	}
	return 0
}

func blockViewportOffset(side Alignment, a Rect, vp Size) int {
	if side == Start {
		return a.Top
	}
	return vp.Height - a.Bottom()
}

// In RTL the inline start edge is the viewport's right edge.
func inlineViewportOffset(side Alignment, a Rect, vp Size, dir Direction) int {
	fromLeft := a.Left
	fromRight := vp.Width - a.Right()
	if dir == RTL {
		fromLeft, fromRight = fromRight, fromLeft
	}
	if side == Start {
		return fromLeft
	}
	return fromRight
}
