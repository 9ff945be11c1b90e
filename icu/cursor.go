package icu

import "unicode"

// cursor is the scan position over the input of a single parse call.
type cursor struct {
	input []rune
	pos   int
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.input)
}

// peek returns the current character, or 0 at end of input.
func (c *cursor) peek() rune {
	if c.pos >= len(c.input) {
		return 0
	}
	return c.input[c.pos]
}

func (c *cursor) peekAt(offset int) rune {
	pos := c.pos + offset
	if pos >= len(c.input) || pos < 0 {
		return 0
	}
	return c.input[pos]
}

// is reports whether the current character is r. Always false at end of input.
func (c *cursor) is(r rune) bool {
	return c.pos < len(c.input) && c.input[c.pos] == r
}

func (c *cursor) advance(n int) {
	c.pos += n
	if c.pos > len(c.input) {
		c.pos = len(c.input)
	}
}

func (c *cursor) match(s []rune) bool {
	if c.pos+len(s) > len(c.input) {
		return false
	}
	for i, ch := range s {
		if c.input[c.pos+i] != ch {
			return false
		}
	}
	return true
}

func (c *cursor) skipSpace() {
	for c.pos < len(c.input) && IsSpace(c.input[c.pos]) {
		c.pos++
	}
}

// slice returns the input from start up to the current position.
func (c *cursor) slice(start int) string {
	return string(c.input[start:c.pos])
}

// current describes the character at the cursor for error messages.
func (c *cursor) current() string {
	if c.eof() {
		return ""
	}
	return string(c.input[c.pos])
}

// IsSpace reports whether the parser treats r as whitespace: the Unicode
// White_Space property without NEL (U+0085), plus the byte order mark.
// This is the set JavaScript's \s matches, so catalogs shared with
// JavaScript tooling split the same way.
func IsSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
