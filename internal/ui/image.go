package ui

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ImageLoader turns an image URL into something a terminal can show. Real
// fetching and caching live outside this program.
type ImageLoader interface {
	Render(url string, width, height int) string
}

// ShadeLoader draws a stable placeholder pattern derived from the URL, so
// the same image always looks the same and different images differ.
type ShadeLoader struct{}

func (ShadeLoader) Render(url string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	shades := current.Shades
	seed := xxhash.Sum64String(url)

	lines := make([]string, height)
	var b strings.Builder
	for y := 0; y < height; y++ {
		b.Reset()
		for x := 0; x < width; x++ {
			// diagonal bands whose slope and phase come from the seed
			band := (x + y*int(seed%3+1) + int(seed>>8%7)) / 3
			b.WriteString(shades[(band+int(seed>>16%4))%len(shades)])
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
