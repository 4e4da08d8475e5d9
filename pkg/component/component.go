// Package component models chat text as a tree of styled text nodes, with a
// plain-text serializer and the JSON form used by game clients.
package component

import "strings"

// Component is a text node with optional bold styling and child nodes. A nil
// Bold inherits the parent's state.
type Component struct {
	Text     string
	Bold     *bool
	Children []Component
}

// Text returns an unstyled component holding s.
func Text(s string) Component {
	return Component{Text: s}
}

// Append returns a copy of c with children added after the existing ones.
func (c Component) Append(children ...Component) Component {
	merged := make([]Component, 0, len(c.Children)+len(children))
	merged = append(merged, c.Children...)
	merged = append(merged, children...)
	c.Children = merged
	return c
}

// WithBold returns a copy of c with bold explicitly set.
func (c Component) WithBold(bold bool) Component {
	c.Bold = &bold
	return c
}

// Walk visits c and its descendants depth-first, parents before children,
// passing the effective bold state of each node.
func Walk(c Component, fn func(node Component, bold bool)) {
	walk(c, false, fn)
}

func walk(c Component, inherited bool, fn func(Component, bool)) {
	bold := inherited
	if c.Bold != nil {
		bold = *c.Bold
	}
	fn(c, bold)
	for _, child := range c.Children {
		walk(child, bold, fn)
	}
}

// PlainText flattens c into its unstyled text.
func PlainText(c Component) string {
	var b strings.Builder
	Walk(c, func(node Component, _ bool) {
		b.WriteString(node.Text)
	})
	return b.String()
}
