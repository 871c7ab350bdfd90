package geometry

// Rect is a read-only snapshot of an element's geometry in viewport cells.
type Rect struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(left, top, width, height int) Rect {
	return Rect{Top: top, Left: left, Width: width, Height: height}
}

// Right returns the column just past the right edge.
func (r Rect) Right() int {
	return r.Left + r.Width
}

// Bottom returns the row just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Top + r.Height
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Size returns the rectangle's extent.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Size is a width/height pair, used for viewports and surfaces.
type Size struct {
	Width  int
	Height int
}
