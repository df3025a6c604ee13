package parser

import "strings"

// cursor walks the lines of one block. Every classification rule advances
// it itself, so the scan position is never shared loop state.
type cursor struct {
	lines []string
	pos   int // index of the next line to return
}

func newCursor(lines []string) *cursor {
	return &cursor{lines: lines}
}

// Done reports whether every line has been consumed
func (c *cursor) Done() bool {
	return c.pos >= len(c.lines)
}

// Pos returns the index of the next line
func (c *cursor) Pos() int {
	return c.pos
}

// Peek returns the next line without consuming it
func (c *cursor) Peek() (string, bool) {
	if c.Done() {
		return "", false
	}
	return c.lines[c.pos], true
}

// Next consumes and returns the next line
func (c *cursor) Next() (string, bool) {
	line, ok := c.Peek()
	if ok {
		c.pos++
	}
	return line, ok
}

// Back un-consumes the last line
func (c *cursor) Back() {
	if c.pos > 0 {
		c.pos--
	}
}

// SkipBlank advances past blank lines
func (c *cursor) SkipBlank() {
	for {
		line, ok := c.Peek()
		if !ok || !isBlank(line) {
			return
		}
		c.pos++
	}
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
