// Package icu parses ICU MessageFormat style messages into an AST.
//
// A message mixes literal text with placeholders ({name}, {n, number},
// {n, plural, one{...} other{...}}) and, optionally, markup tags
// (<b>...</b>, <br/>). The delimiters are configurable through Symbols.
//
// A Parser is immutable once constructed and may be shared between
// goroutines; every call to Parse scans with its own cursor.
package icu

import (
	"fmt"
	"strconv"
	"strings"
)

type role uint8

const (
	roleNone role = iota
	roleOpen
	roleClose
	roleTagOpen
	roleTagClose
	roleTagClosing
	roleSep
	roleSubVar
	roleEscape
)

// Parser parses messages using a fixed set of Symbols.
type Parser struct {
	symbols Symbols
	roles   map[rune]role

	open, close                   rune
	tagOpen, tagClose, tagClosing rune
	sep, subVar, escape           rune
	offset                        []rune
	subnumeric, submessage        map[string]bool
	allowTags                     bool
	maxDepth                      int
}

// NewParser validates symbols and returns a Parser using them. Invalid
// symbols yield a *ConfigurationError.
func NewParser(symbols Symbols) (*Parser, error) {
	if err := symbols.Validate(); err != nil {
		return nil, err
	}

	p := &Parser{
		symbols:    symbols,
		roles:      make(map[rune]role, 8),
		open:       firstRune(symbols.Open),
		close:      firstRune(symbols.Close),
		tagOpen:    firstRune(symbols.TagOpen),
		tagClose:   firstRune(symbols.TagClose),
		tagClosing: firstRune(symbols.TagClosing),
		sep:        firstRune(symbols.Sep),
		subVar:     firstRune(symbols.SubVar),
		escape:     firstRune(symbols.Escape),
		offset:     []rune(symbols.Offset),
		subnumeric: make(map[string]bool),
		submessage: make(map[string]bool),
		allowTags:  symbols.AllowTags,
		maxDepth:   symbols.MaxDepth,
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}

	p.roles[p.open] = roleOpen
	p.roles[p.close] = roleClose
	p.roles[p.tagOpen] = roleTagOpen
	p.roles[p.tagClose] = roleTagClose
	p.roles[p.tagClosing] = roleTagClosing
	p.roles[p.sep] = roleSep
	p.roles[p.subVar] = roleSubVar
	p.roles[p.escape] = roleEscape

	for _, t := range symbols.SubnumericTypes {
		p.subnumeric[t] = true
	}
	for _, t := range symbols.SubmessageTypes {
		p.submessage[t] = true
	}

	return p, nil
}

// Symbols returns the symbols the parser was built with.
func (p *Parser) Symbols() Symbols {
	s := p.symbols
	s.SubnumericTypes = append([]string(nil), s.SubnumericTypes...)
	s.SubmessageTypes = append([]string(nil), s.SubmessageTypes...)
	return s
}

// IsSubmessageType reports whether placeholders of type t carry sub-messages.
func (p *Parser) IsSubmessageType(t string) bool {
	return p.submessage[t]
}

// IsSubnumericType reports whether placeholders of type t accept an offset
// clause and the # back-reference.
func (p *Parser) IsSubnumericType(t string) bool {
	return p.subnumeric[t]
}

var defaultParser, _ = NewParser(DefaultSymbols())

// Parse parses v with the default symbols. See Parser.Parse.
func Parse(v any) (Message, error) {
	return defaultParser.Parse(v)
}

// Parse converts v to a string and parses it. Strings are used as is,
// byte and rune slices are converted, nil becomes the empty message, and
// any other value is formatted the way fmt.Sprint formats it, including
// Stringers and errors behind nil pointers.
func (p *Parser) Parse(v any) (Message, error) {
	return p.ParseString(Stringify(v))
}

// ParseString parses a single message.
func (p *Parser) ParseString(msg string) (Message, error) {
	s := &scanner{
		Parser: p,
		cursor: cursor{input: []rune(msg)},
	}
	return s.parseMessage(nil)
}

// Stringify converts an arbitrary value to the text Parse would scan.
func Stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case []rune:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// scanner holds the state of one parse call.
type scanner struct {
	*Parser
	cursor
	depth int
}

// frame is the enclosing context of a nested message: either the variable
// owning a sub-message or the tag whose children are being parsed.
type frame struct {
	variable *Variable
	tag      *Tag
	closed   bool
}

// numeric reports whether # is a back-reference inside f.
func (s *scanner) numeric(f *frame) bool {
	return f != nil && f.variable != nil && s.subnumeric[f.variable.Type]
}

func (s *scanner) parseMessage(parent *frame) (Message, error) {
	if parent != nil {
		s.depth++
		defer func() { s.depth-- }()
		if s.depth > s.maxDepth {
			return nil, &SyntaxError{
				Pos:   s.pos,
				Found: fmt.Sprintf("nesting deeper than %d", s.maxDepth),
				Err:   ErrTooDeep,
			}
		}
	}

	hash := s.numeric(parent)
	var out Message
	var textBuf strings.Builder

	flushText := func() {
		if textBuf.Len() > 0 {
			out = append(out, Text{Value: textBuf.String()})
			textBuf.Reset()
		}
	}

	for !s.eof() {
		start := s.pos
		ch := s.peek()

		switch {
		case ch == s.close:
			if parent != nil {
				flushText()
				return out, nil
			}
			textBuf.WriteRune(ch)
			s.advance(1)

		case ch == s.open || (hash && ch == s.subVar):
			node, err := s.parseElement(parent)
			if err != nil {
				return nil, err
			}
			flushText()
			out = append(out, node)

		case s.allowTags && ch == s.tagOpen && !IsSpace(s.peekAt(1)):
			res, err := s.parseTag(parent)
			if err != nil {
				return nil, err
			}
			switch res.kind {
			case tagClosed:
				parent.closed = true
				flushText()
				return out, nil
			case tagLiteral:
				textBuf.WriteString(res.text)
			default:
				flushText()
				out = append(out, res.node)
			}

		default:
			textBuf.WriteString(s.parseText(hash, scanMessage))
		}

		if s.pos == start {
			return nil, s.unexpected(string(ch), start)
		}
	}

	flushText()
	return out, nil
}

func (s *scanner) expected(what string) *SyntaxError {
	return &SyntaxError{Pos: s.pos, Expected: what, Found: s.current()}
}

func (s *scanner) unexpected(what string, pos int) *SyntaxError {
	return &SyntaxError{Pos: pos, Found: what}
}
