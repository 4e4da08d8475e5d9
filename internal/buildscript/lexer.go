package buildscript

import "strings"

type byteClass uint8

const (
	classCode byteClass = iota
	classQuoted
	classComment
)

// classify labels each byte of src. Quotes belong to the literal they
// delimit and comment markers to their comment. The newline ending a line
// comment is code.
func classify(src string) []byteClass {
	classes := make([]byteClass, len(src))
	for i := 0; i < len(src); {
		n := 1
		switch {
		case strings.HasPrefix(src[i:], "//"):
			n = strings.IndexByte(src[i:], '\n')
			if n < 0 {
				n = len(src) - i
			}
			mark(classes[i:i+n], classComment)
		case strings.HasPrefix(src[i:], "/*"):
			n = len(src) - i
			if end := strings.Index(src[i+2:], "*/"); end >= 0 {
				n = end + 4
			}
			mark(classes[i:i+n], classComment)
		case src[i] == '"' || src[i] == '\'':
			n = literalEnd(src, i) - i
			mark(classes[i:i+n], classQuoted)
		}
		i += n
	}
	return classes
}

func mark(classes []byteClass, c byteClass) {
	for i := range classes {
		classes[i] = c
	}
}

// literalEnd returns the index after the quote closing the literal opened at
// start. An unterminated literal runs to the end of src.
func literalEnd(src string, start int) int {
	quote := src[start]
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(src)
}

type frame struct {
	label string
	open  int
}

// namedBlocks returns the bodies of `name { ... }` blocks in src. A block
// nested inside another block of the same name is part of the outer body and
// not reported on its own. Unclosed blocks are ignored.
func namedBlocks(src, name string) []string {
	classes := classify(src)
	var (
		stack  []frame
		bodies []string
	)
	for i, c := range classes {
		if c != classCode {
			continue
		}
		switch src[i] {
		case '{':
			stack = append(stack, frame{label: labelBefore(src, classes, i), open: i})
		case '}':
			if len(stack) == 0 {
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.label == name && !within(stack, name) {
				bodies = append(bodies, src[f.open+1:i])
			}
		}
	}
	return bodies
}

func within(stack []frame, name string) bool {
	for _, f := range stack {
		if f.label == name {
			return true
		}
	}
	return false
}

// labelBefore returns the identifier written right before the brace at open,
// skipping blanks and comments. `maven(url) {` has no label.
func labelBefore(src string, classes []byteClass, open int) string {
	end := open
	for end > 0 && (classes[end-1] == classComment || isBlank(src[end-1])) {
		end--
	}
	start := end
	for start > 0 && classes[start-1] == classCode && isIdentByte(src[start-1]) {
		start--
	}
	return src[start:end]
}

// topLevel keeps the code and literals outside any braces. Comments and
// braced bodies are dropped.
func topLevel(src string) string {
	classes := classify(src)
	var b strings.Builder
	b.Grow(len(src))
	depth := 0
	for i, c := range classes {
		switch {
		case c == classComment:
		case c == classCode && src[i] == '{':
			depth++
		case c == classCode && src[i] == '}':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteByte(src[i])
		}
	}
	return b.String()
}

// stripComments blanks out comments. Line structure is preserved.
func stripComments(src string) string {
	classes := classify(src)
	var b strings.Builder
	b.Grow(len(src))
	for i, c := range classes {
		if c != classComment || src[i] == '\n' {
			b.WriteByte(src[i])
		}
	}
	return b.String()
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
