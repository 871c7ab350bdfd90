package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type cell struct {
	r     rune
	style *lipgloss.Style
	// cont marks the trailing column of a wide rune.
	cont bool
}

// canvas composites surfaces onto a grid of terminal cells. Later draws
// cover earlier ones; everything outside the grid is clipped.
type canvas struct {
	width  int
	height int
	cells  [][]cell
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: max(width, 0), height: max(height, 0)}
	c.cells = make([][]cell, c.height)
	for y := range c.cells {
		row := make([]cell, c.width)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
	return c
}

// text draws s starting at (x, y) and returns the column after the last
// drawn rune. Wide runes that would straddle the right edge are dropped.
func (c *canvas) text(x, y int, s string, style *lipgloss.Style) int {
	if y < 0 || y >= c.height {
		return x + runewidth.StringWidth(s)
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= 0 && x+w <= c.width {
			c.clearWide(x, y)
			c.cells[y][x] = cell{r: r, style: style}
			if w == 2 {
				c.clearWide(x+1, y)
				c.cells[y][x+1] = cell{style: style, cont: true}
			}
		}
		x += w
	}
	return x
}

// fill paints n copies of r from (x, y).
func (c *canvas) fill(x, y, n int, r rune, style *lipgloss.Style) {
	if n <= 0 {
		return
	}
	c.text(x, y, strings.Repeat(string(r), n), style)
}

// clearWide blanks the other half of a wide rune about to be overwritten.
func (c *canvas) clearWide(x, y int) {
	cur := c.cells[y][x]
	if cur.cont && x > 0 {
		c.cells[y][x-1] = cell{r: ' ', style: c.cells[y][x-1].style}
	}
	if !cur.cont && runewidth.RuneWidth(cur.r) == 2 && x+1 < c.width {
		c.cells[y][x+1] = cell{r: ' ', style: cur.style}
	}
}

// Render joins the grid, styling runs of cells that share a style.
func (c *canvas) Render() string {
	lines := make([]string, c.height)
	var b, run strings.Builder
	for y, row := range c.cells {
		b.Reset()
		var current *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current != nil {
				b.WriteString(current.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.cont {
				continue
			}
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}
