package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/idilsaglam/mediafeed/internal/model"
)

const ellipsis = "…"

// CardRenderer draws feed items as bordered cards.
type CardRenderer struct {
	Images ImageLoader
}

// NewCardRenderer returns a renderer backed by the placeholder loader.
func NewCardRenderer() CardRenderer {
	return CardRenderer{Images: ShadeLoader{}}
}

// Render draws it as a card exactly width cells wide and
// layout.CardHeight() lines tall.
func (r CardRenderer) Render(it model.FeedItem, width int, layout Layout, selected bool) string {
	inner := width - 2
	if inner < 8 {
		inner = 8
	}
	t := current

	var lines []string
	if r.Images != nil {
		lines = append(lines, t.Muted.Render(r.Images.Render(it.ImageURL, inner, layout.imageRows())))
	}
	lines = append(lines, wrap(it.Title, inner, layout.titleLines())...)
	lines = append(lines, footer(it, inner))

	border := t.BorderColor
	if selected {
		border = t.SelectedBorder
	}
	style := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(border).
		Width(inner)
	if selected {
		style = style.Border(lipgloss.ThickBorder())
	}
	return style.Render(strings.Join(lines, "\n"))
}

// footer lays out "◉ username      ♡ 123" across width cells.
func footer(it model.FeedItem, width int) string {
	t := current
	heart, heartStyle := t.HeartOff, t.Muted
	if it.IsLiked {
		heart, heartStyle = t.HeartOn, t.Liked
	}
	right := heart + " " + strconv.Itoa(it.LikeCount)
	rightW := runewidth.StringWidth(right)

	avatar := t.Avatar + " "
	nameW := width - rightW - runewidth.StringWidth(avatar) - 1
	name := truncate(it.Username, nameW)
	left := avatar + name

	gap := width - runewidth.StringWidth(left) - rightW
	if gap < 1 {
		gap = 1
	}
	return t.Accent.Render(avatar) + t.Muted.Render(name) + strings.Repeat(" ", gap) + heartStyle.Render(right)
}

// wrap breaks s into at most maxLines lines of width cells, always returning
// exactly maxLines lines so every card has the same height. Text that does
// not fit ends with an ellipsis.
func wrap(s string, width, maxLines int) []string {
	lines := make([]string, 0, maxLines)
	rest := []rune(strings.TrimSpace(s))
	for len(lines) < maxLines && len(rest) > 0 {
		w, cut := 0, 0
		for cut < len(rest) {
			rw := runewidth.RuneWidth(rest[cut])
			if w+rw > width {
				break
			}
			w += rw
			cut++
		}
		if cut == 0 {
			// a single rune wider than the line
			cut = 1
		}
		line := string(rest[:cut])
		rest = rest[cut:]
		if len(lines) == maxLines-1 && len(rest) > 0 {
			line = runewidth.Truncate(line+string(rest), width, ellipsis)
			rest = nil
		}
		lines = append(lines, strings.TrimSpace(line))
	}
	for len(lines) < maxLines {
		lines = append(lines, "")
	}
	return lines
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}
