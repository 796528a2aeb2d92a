package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + card borders.
// All renderers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Liked, Success, Error lipgloss.Style

	Border         lipgloss.Border
	BorderColor    lipgloss.TerminalColor
	SelectedBorder lipgloss.TerminalColor

	HeartOn, HeartOff, Avatar string
	Shades                    []string // image placeholder fill, light to dark
}

var current = classic()

// SetTheme switches the theme used by every renderer. Unknown names fall
// back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:           "neon",
			Title:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
			Muted:          lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Accent:         lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
			Liked:          lipgloss.NewStyle().Foreground(lipgloss.Color("198")).Bold(true),
			Success:        lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
			Error:          lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Border:         lipgloss.RoundedBorder(),
			BorderColor:    lipgloss.Color("93"),
			SelectedBorder: lipgloss.Color("51"),
			HeartOn:        "♥", HeartOff: "♡", Avatar: "◉",
			Shades: []string{"░", "▒", "▓", "█"},
		}
	case "mono":
		current = Theme{
			Name:           "mono",
			Title:          lipgloss.NewStyle().Bold(true),
			Muted:          lipgloss.NewStyle(),
			Accent:         lipgloss.NewStyle(),
			Liked:          lipgloss.NewStyle().Bold(true),
			Success:        lipgloss.NewStyle(),
			Error:          lipgloss.NewStyle().Bold(true),
			Border:         lipgloss.NormalBorder(),
			BorderColor:    lipgloss.NoColor{},
			SelectedBorder: lipgloss.NoColor{},
			HeartOn:        "[x]", HeartOff: "[ ]", Avatar: "@",
			Shades: []string{".", ":", "+", "#"},
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Name:           "classic",
		Title:          lipgloss.NewStyle().Bold(true),
		Muted:          lipgloss.NewStyle().Faint(true),
		Accent:         lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Liked:          lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Success:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:          lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Border:         lipgloss.RoundedBorder(),
		BorderColor:    lipgloss.Color("8"),
		SelectedBorder: lipgloss.Color("12"),
		HeartOn:        "♥", HeartOff: "♡", Avatar: "◉",
		Shades: []string{"░", "▒", "▓", "█"},
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }
