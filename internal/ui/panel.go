package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel frames lines in a box using the current theme.
func Panel(lines []string) string {
	return lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Grid lays cards out in rows of columns cards separated by gap cells.
func Grid(cards []string, columns, gap int) string {
	if columns < 1 {
		columns = 1
	}
	spacer := strings.Repeat(" ", gap)
	var rows []string
	for i := 0; i < len(cards); i += columns {
		end := i + columns
		if end > len(cards) {
			end = len(cards)
		}
		var row []string
		for j, c := range cards[i:end] {
			if j > 0 {
				row = append(row, spacer)
			}
			row = append(row, c)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// ProgressBar renders a Unicode bar with a done/total counter.
func ProgressBar(done, total, width int) string {
	denom := total
	if denom <= 0 {
		denom = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(denom) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d/%d", bar, done, total)
}

// CardWidth splits the available width across the layout's columns.
func CardWidth(total int, layout Layout, gap int) int {
	cols := layout.Columns()
	w := (total - gap*(cols-1)) / cols
	if w < 12 {
		w = 12
	}
	return w
}
