// Package textwidth measures text in the pixel widths of the default game
// font and centers components for the server list MOTD and the chat window.
//
// Widths exclude the one-pixel gap between glyphs. Bold glyphs are one pixel
// wider, except for the space.
package textwidth

import (
	"strings"

	"github.com/matzegebbe/publish-target/pkg/component"
)

const (
	// MOTDWidth is the width of a server list MOTD line, in pixels.
	MOTDWidth = 154
	// ChatWidth is the width of the chat window, in pixels.
	ChatWidth = 320
	// DefaultWidth applies to characters missing from the table.
	DefaultWidth = 4
	// SpaceWidth is the width of ' '.
	SpaceWidth = 3
)

var widths = map[rune]int{
	'!': 1, '\'': 1, ',': 1, '.': 1, ':': 1, ';': 1, '|': 1, 'i': 1, 'l': 1,
	'`': 2,
	'"': 3, '[': 3, ']': 3, 'I': 3, ' ': SpaceWidth,
	'(': 4, ')': 4, '{': 4, '}': 4, '<': 4, '>': 4, 'f': 4, 'k': 4, 't': 4,
	'@': 6,
}

const fiveWide = "#$%^&*-_+=?/\\~"

func lookup(r rune) (int, bool) {
	if w, ok := widths[r]; ok {
		return w, true
	}
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune(fiveWide, r) {
		return 5, true
	}
	return DefaultWidth, false
}

// CharWidth returns the pixel width of r.
func CharWidth(r rune, bold bool) int {
	w, _ := lookup(r)
	if bold && r != ' ' {
		w++
	}
	return w
}

// Known reports whether r has an entry in the width table.
func Known(r rune) bool {
	_, ok := lookup(r)
	return ok
}

// StringWidth sums the widths of every rune in s.
func StringWidth(s string, bold bool) int {
	total := 0
	for _, r := range s {
		total += CharWidth(r, bold)
	}
	return total
}

// Width measures every text node of c with its effective bold state.
func Width(c component.Component) int {
	total := 0
	component.Walk(c, func(node component.Component, bold bool) {
		total += StringWidth(node.Text, bold)
	})
	return total
}

// Center prefixes c with enough spaces to center it on a line of width
// pixels. The result is an empty root holding the padding and c.
func Center(c component.Component, width int) component.Component {
	half := Width(c) / 2
	step := SpaceWidth + 1
	compensated := 0
	for compensated < width-half {
		compensated += step
	}
	padding := strings.Repeat(" ", compensated/step)
	return component.Text("").Append(component.Text(padding), c)
}

// CenterMOTD centers c for the server list MOTD.
func CenterMOTD(c component.Component) component.Component {
	return Center(c, MOTDWidth)
}

// CenterChat centers c for the chat window.
func CenterChat(c component.Component) component.Component {
	return Center(c, ChatWidth)
}
