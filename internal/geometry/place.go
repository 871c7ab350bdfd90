package geometry

// Place converts insets into an absolute rectangle in viewport cells.
//
// Top-layer insets are measured from the viewport edges. Otherwise the
// anchor is the containing block and insets are measured from its edges.
// In RTL the inline start side is the right edge.
func Place(res Result, anchor Rect, surface Size, viewport Size, dir Direction, topLayer bool) Rect {
	container := anchor
	if topLayer {
		container = Rect{Width: viewport.Width, Height: viewport.Height}
	}

	var top int
	if res.BlockSide == Start {
		top = container.Top + res.BlockInset
	} else {
		top = container.Bottom() - res.BlockInset - surface.Height
	}

	fromLeft := res.InlineSide == Start
	if dir == RTL {
		fromLeft = !fromLeft
	}
	var left int
	if fromLeft {
		left = container.Left + res.InlineInset
	} else {
		left = container.Right() - res.InlineInset - surface.Width
	}
	return Rect{Top: top, Left: left, Width: surface.Width, Height: surface.Height}
}
