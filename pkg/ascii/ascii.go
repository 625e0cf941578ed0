// Package ascii formats terminal output: boxed summaries, aligned tables and
// the one-line file actions printed after a theme operation.
package ascii

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Box builds a box containing the provided lines and returns it as a string.
// Lines are left-aligned with single-space padding on each side. Multi-width
// runes (emoji, CJK, etc.) are accounted for so the borders stay aligned.
func Box(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	trimmed := make([]string, len(lines))
	maxWidth := 0
	for i, line := range lines {
		trimmed[i] = strings.TrimRight(line, " ")
		if w := StringWidth(trimmed[i]); w > maxWidth {
			maxWidth = w
		}
	}

	border := strings.Repeat("─", maxWidth+2)

	var sb strings.Builder
	sb.WriteString("┌" + border + "┐\n")
	for _, line := range trimmed {
		sb.WriteString("│ " + runewidth.FillRight(line, maxWidth) + " │\n")
	}
	sb.WriteString("└" + border + "┘\n")
	return sb.String()
}

// Truncate shortens value to at most width display columns, ending with
// "..." when there is room for it.
func Truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

// StringWidth returns the display width of a string, ignoring ANSI styling.
func StringWidth(s string) int {
	return lipgloss.Width(s)
}

// Table renders rows under headers with columns padded to the widest cell.
// Cells wider than MaxWidth are truncated when MaxWidth is positive.
type Table struct {
	Headers  []string
	Rows     [][]string
	MaxWidth int
	Color    bool
}

var headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// Render returns the table as text with a trailing newline per row.
func (t Table) Render() string {
	cols := len(t.Headers)
	for _, r := range t.Rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if cols == 0 {
		return ""
	}

	cell := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		if t.MaxWidth > 0 {
			return Truncate(row[i], t.MaxWidth)
		}
		return row[i]
	}

	widths := make([]int, cols)
	for _, row := range append([][]string{t.Headers}, t.Rows...) {
		for i := 0; i < cols; i++ {
			if w := StringWidth(cell(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeRow := func(row []string, header bool) {
		parts := make([]string, cols)
		for i := 0; i < cols; i++ {
			text := cell(row, i)
			pad := strings.Repeat(" ", widths[i]-StringWidth(text))
			if header && t.Color {
				text = headerStyle.Render(text)
			}
			parts[i] = text + pad
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		sb.WriteString("\n")
	}
	if len(t.Headers) > 0 {
		writeRow(t.Headers, true)
	}
	for _, row := range t.Rows {
		writeRow(row, false)
	}
	return sb.String()
}

// Action labels a file-level result line.
type Action string

const (
	Created   Action = "created"
	Updated   Action = "updated"
	Removed   Action = "removed"
	Skipped   Action = "skipped"
	Unchanged Action = "unchanged"
	Failed    Action = "failed"
	Planned   Action = "would"
)

var actionStyles = map[Action]lipgloss.Style{
	Created:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Updated:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	Removed:   lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	Skipped:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	Unchanged: lipgloss.NewStyle().Faint(true),
	Failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	Planned:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
}

const actionWidth = 9

// Line renders "<action>  <subject>" with the action padded to a fixed width.
func Line(action Action, subject string, color bool) string {
	label := runewidth.FillRight(string(action), actionWidth)
	if style, ok := actionStyles[action]; ok && color {
		label = style.Render(label)
	}
	return label + " " + subject
}
