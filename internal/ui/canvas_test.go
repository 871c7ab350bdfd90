package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasClipsAndTrims(t *testing.T) {
	c := newCanvas(6, 2)
	c.text(-2, 0, "abcdef", nil)
	c.text(4, 1, "xyz", nil)
	c.text(0, 5, "off grid", nil)
	if got, want := c.Render(), "cdef\n    xy"; got != want {
		t.Fatalf("unexpected render %q, want %q", got, want)
	}
}

func TestCanvasLaterDrawsCover(t *testing.T) {
	c := newCanvas(5, 1)
	c.text(0, 0, "aaaaa", nil)
	c.text(1, 0, "bb", nil)
	if got := c.Render(); got != "abbaa" {
		t.Fatalf("expected overlay, got %q", got)
	}
}

func TestCanvasWideRunes(t *testing.T) {
	c := newCanvas(4, 1)
	end := c.text(0, 0, "日本", nil)
	if end != 4 {
		t.Fatalf("expected next column 4, got %d", end)
	}
	c.text(1, 0, "x", nil)
	if got := c.Render(); got != " x本" {
		t.Fatalf("expected the split wide rune blanked, got %q", got)
	}

	c = newCanvas(3, 1)
	c.text(0, 0, "a日本", nil)
	if got := c.Render(); got != "a日" {
		t.Fatalf("expected the straddling rune dropped, got %q", got)
	}
}

func TestCanvasFillUsesStyle(t *testing.T) {
	style := lipgloss.NewStyle()
	c := newCanvas(3, 1)
	c.fill(0, 0, 3, '─', &style)
	if got := c.Render(); got != "───" {
		t.Fatalf("unexpected fill %q", got)
	}
}
