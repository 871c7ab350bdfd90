package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/popup-menu/internal/geometry"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/theme"
)

const (
	indicator     = "▌"
	arrowForward  = "›"
	arrowBackward = "‹"
	moreAbove     = "▲"
	moreBelow     = "▼"
)

// segment is a run of text drawn with one style.
type segment struct {
	text  string
	style *lipgloss.Style
}

// styledLine is one terminal row of a surface.
type styledLine []segment

func (l styledLine) draw(c *canvas, x, y int) {
	for _, seg := range l {
		x = c.text(x, y, seg.text, seg.style)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	c := newCanvas(m.width, m.height)
	m.drawButton(c)
	for _, mm := range m.visibleMenus() {
		m.drawMenu(c, mm)
	}
	lines := strings.Split(c.Render(), "\n")
	for i, footer := range m.footerLines() {
		row := len(lines) - m.footerRows() + i
		if row >= 0 && row < len(lines) {
			lines[row] = footer
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) drawButton(c *canvas) {
	rect := m.button.Anchor().BoundingRect()
	style := styles.Button
	if m.root.Open() || m.focus.Current() == menu.Focusable(m.button) {
		style = styles.ButtonActive
	}
	c.text(rect.Left, rect.Top, " "+m.button.Label()+" ", style)
}

// drawMenu draws the share of a surface its animation has revealed, growing
// away from the anchored edge.
func (m *Model) drawMenu(c *canvas, mm *menu.Menu) {
	rect := mm.Surface().BoundingRect()
	if rect.Empty() {
		return
	}
	lines := m.surfaceLines(mm, rect)
	n := int(math.Ceil(m.revealed(mm) * float64(len(lines))))
	n = max(1, min(n, len(lines)))
	start := 0
	if mm.OpenDirection() == "UP" {
		start = len(lines) - n
	}
	for i := start; i < start+n; i++ {
		lines[i].draw(c, rect.Left, rect.Top+i)
	}
}

func (m *Model) surfaceLines(mm *menu.Menu, rect geometry.Rect) []styledLine {
	border := styles.Border
	if mm.Focused() {
		border = styles.FocusedBorder
	}
	inner := rect.Width - 2
	rows := mm.Rows()
	visible := rect.Height - 2
	sc := m.scrollFor(mm)
	above, below := sc.Overflowing(len(rows), visible)
	from, to := sc.Window(len(rows), visible)

	lines := make([]styledLine, 0, rect.Height)
	lines = append(lines, styledLine{{text: borderEdge(theme.Border.TopLeft, theme.Border.Top, theme.Border.TopRight, inner, above, moreAbove), style: border}})
	for _, r := range rows[from:to] {
		line := styledLine{{text: theme.Border.Left, style: border}}
		line = append(line, m.rowSegments(mm, r, inner)...)
		line = append(line, segment{text: theme.Border.Right, style: border})
		lines = append(lines, line)
	}
	for len(lines) < rect.Height-1 {
		lines = append(lines, styledLine{
			{text: theme.Border.Left, style: border},
			{text: strings.Repeat(" ", max(inner, 0)), style: styles.Surface},
			{text: theme.Border.Right, style: border},
		})
	}
	lines = append(lines, styledLine{{text: borderEdge(theme.Border.BottomLeft, theme.Border.Bottom, theme.Border.BottomRight, inner, below, moreBelow), style: border}})
	return lines
}

func borderEdge(left, fill, right string, inner int, marked bool, mark string) string {
	if inner <= 0 {
		return left + right
	}
	edge := []string{}
	for i := 0; i < inner; i++ {
		edge = append(edge, fill)
	}
	if marked {
		edge[inner/2] = mark
	}
	return left + strings.Join(edge, "") + right
}

func (m *Model) rowSegments(mm *menu.Menu, r menu.Row, inner int) styledLine {
	it, ok := r.(menu.Item)
	if !ok {
		return styledLine{{text: strings.Repeat(theme.Border.Top, max(inner, 0)), style: styles.Divider}}
	}
	lineStyle, markStyle := styles.Item, styles.ItemIndicator
	switch {
	case it.Disabled():
		lineStyle = styles.DisabledItem
	case it.Selected():
		lineStyle, markStyle = styles.SelectedItem, styles.SelectedItemIndicator
	}
	arrow := " "
	if _, isSub := it.(*menu.SubmenuItem); isSub {
		arrow = arrowForward
		if mm.Surface().Direction() == geometry.RTL {
			arrow = arrowBackward
		}
	}
	labelWidth := inner - 4
	label := fitText(it.Headline(), labelWidth)
	if mm.Surface().Direction() == geometry.RTL {
		return styledLine{
			{text: arrow + " ", style: lineStyle},
			{text: padLeft(label, labelWidth) + " ", style: lineStyle},
			{text: indicator, style: markStyle},
		}
	}
	return styledLine{
		{text: indicator, style: markStyle},
		{text: " " + padRight(label, labelWidth), style: lineStyle},
		{text: " " + arrow, style: lineStyle},
	}
}

func (m *Model) footerRows() int {
	rows := 0
	if m.showFooter {
		rows++
	}
	if m.errMsg != "" {
		rows++
	}
	return rows
}

func (m *Model) footerLines() []string {
	var lines []string
	if m.errMsg != "" {
		lines = append(lines, truncateText(styles.Error.Render(fmt.Sprintf("Error: %s", m.errMsg)), m.width))
	}
	if m.showFooter {
		text := m.help.View(m.keys)
		if buf := m.typeaheadBuffer(); buf != "" {
			text = styles.Typeahead.Render("› "+buf) + "  " + text
		}
		lines = append(lines, truncateText(text, m.width))
	}
	return lines
}

func (m *Model) typeaheadBuffer() string {
	cur, ok := m.focus.Current().(*menu.Menu)
	if !ok || !cur.Typeahead().Active() {
		return ""
	}
	return cur.Typeahead().Buffer()
}

func fitText(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

func padRight(text string, width int) string {
	if pad := width - runewidth.StringWidth(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}

func padLeft(text string, width int) string {
	if pad := width - runewidth.StringWidth(text); pad > 0 {
		return strings.Repeat(" ", pad) + text
	}
	return text
}

// truncateText cuts a possibly styled line to width columns.
func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
