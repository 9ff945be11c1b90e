package icu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTooDeep is wrapped by the SyntaxError returned when tags and
// placeholders nest deeper than Symbols.MaxDepth.
var ErrTooDeep = errors.New("message nesting too deep")

// SyntaxError describes input that is not a valid message. Pos is a
// zero-based offset in runes into the parsed input.
type SyntaxError struct {
	Pos      int
	Expected string // what the parser wanted; empty for "unexpected" errors
	Found    string // offending character or description; empty at end of input
	Err      error
}

func (e *SyntaxError) Error() string {
	if e.Expected != "" {
		found := e.Found
		if found == "" {
			found = "eof"
		}
		return fmt.Sprintf("expected %s at position %d but found %s", e.Expected, e.Pos, found)
	}
	return fmt.Sprintf("unexpected %s at position %d", e.Found, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// LineCol converts Pos into a 1-based line and column within input.
// Columns count runes.
func (e *SyntaxError) LineCol(input string) (line, col int) {
	return LineCol(input, e.Pos)
}

// LineCol converts a rune offset into a 1-based line and column.
func LineCol(input string, pos int) (line, col int) {
	line, col = 1, 1
	i := 0
	for _, r := range input {
		if i >= pos {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i++
	}
	return line, col
}

// ConfigurationError reports an invalid Symbols value. It is returned by
// NewParser and never while parsing.
type ConfigurationError struct {
	Options []string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if len(e.Options) == 1 {
		return fmt.Sprintf("option %s %s", e.Options[0], e.Reason)
	}
	return fmt.Sprintf("options %s %s", strings.Join(e.Options, " and "), e.Reason)
}
