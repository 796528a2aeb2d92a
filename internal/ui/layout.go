package ui

import "fmt"

// Layout is the arrangement of cards on screen.
type Layout int

const (
	Double Layout = iota // two cards per row
	Single               // one wide card per row
)

func ParseLayout(s string) (Layout, error) {
	switch s {
	case "", "double":
		return Double, nil
	case "single":
		return Single, nil
	}
	return Double, fmt.Errorf("unknown layout %q", s)
}

func (l Layout) String() string {
	if l == Single {
		return "single"
	}
	return "double"
}

// Toggle returns the other layout.
func (l Layout) Toggle() Layout {
	if l == Single {
		return Double
	}
	return Single
}

// Columns is the number of cards per row.
func (l Layout) Columns() int {
	if l == Single {
		return 1
	}
	return 2
}

// imageRows and titleLines follow the card proportions: single cards give
// the picture more room and show one more caption line.
func (l Layout) imageRows() int {
	if l == Single {
		return 6
	}
	return 5
}

func (l Layout) titleLines() int {
	if l == Single {
		return 3
	}
	return 2
}

// CardHeight is the rendered height of one card, borders included.
func (l Layout) CardHeight() int {
	// image + title + footer + top/bottom border
	return l.imageRows() + l.titleLines() + 1 + 2
}
