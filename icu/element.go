package icu

import (
	"strconv"
	"strings"
)

// parseElement parses a {id[, type[, format|sub-messages]]} placeholder, or
// the # back-reference when parent is a sub-numeric variable.
func (s *scanner) parseElement(parent *frame) (Node, error) {
	if s.numeric(parent) && s.is(s.subVar) {
		s.advance(1)
		return NumberRef{ID: parent.variable.ID}, nil
	}

	s.advance(1)
	s.skipSpace()

	// ID
	id := s.parseText(false, scanName)
	if id == "" {
		return nil, s.expected("placeholder id")
	}
	v := Variable{ID: id}

	s.skipSpace()
	if s.is(s.close) {
		s.advance(1)
		return v, nil
	}
	if !s.is(s.sep) {
		return nil, s.expected(s.symbols.Sep + " or " + s.symbols.Close)
	}
	s.advance(1)
	s.skipSpace()

	// Type
	typ := s.parseText(false, scanName)
	if typ == "" {
		return nil, s.expected("type")
	}
	v.Type = typ

	s.skipSpace()
	if s.is(s.close) {
		if s.submessage[typ] {
			return nil, s.expected("sub-messages")
		}
		s.advance(1)
		return v, nil
	}
	if !s.is(s.sep) {
		return nil, s.expected(s.symbols.Sep + " or " + s.symbols.Close)
	}
	s.advance(1)
	s.skipSpace()

	// Format
	if s.subnumeric[typ] {
		offset, ok, err := s.parseOffset()
		if err != nil {
			return nil, err
		}
		if ok {
			v.Offset = &offset
			s.skipSpace()
		}
	}

	if s.submessage[typ] {
		options, err := s.parseSubmessages(&v)
		if err != nil {
			return nil, err
		}
		if !options.Has("other") {
			return nil, s.expected("other sub-message")
		}
		v.Options = options
	} else {
		format := strings.TrimRightFunc(s.parseText(false, scanFormat), IsSpace)
		if format == "" {
			return nil, s.expected("format")
		}
		v.Format = format
	}

	s.skipSpace()
	if !s.is(s.close) {
		return nil, s.expected(s.symbols.Close)
	}
	s.advance(1)
	return v, nil
}

// parseOffset parses an optional "offset:N" clause. ok is false when the
// keyword is absent.
func (s *scanner) parseOffset() (offset int, ok bool, err error) {
	if !s.match(s.offset) {
		return 0, false, nil
	}
	s.advance(len(s.offset))
	s.skipSpace()

	start := s.pos
	if s.is('-') || s.is('+') {
		s.advance(1)
	}
	digits := s.pos
	for !s.eof() && isDigit(s.peek()) {
		s.advance(1)
	}
	if s.pos == digits {
		return 0, false, s.expected("number")
	}

	offset, err = strconv.Atoi(s.slice(start))
	if err != nil {
		s.pos = start
		return 0, false, s.expected("number")
	}
	return offset, true, nil
}

// parseSubmessages parses the "selector {message}" list of owner up to the
// closing brace of the placeholder.
func (s *scanner) parseSubmessages(owner *Variable) (Options, error) {
	var options Options
	f := &frame{variable: owner}

	for !s.eof() {
		if s.is(s.close) {
			break
		}

		selector := s.parseText(false, scanSelector)
		if selector == "" {
			return nil, s.expected("sub-message selector")
		}

		s.skipSpace()
		msg, err := s.parseSubmessage(f)
		if err != nil {
			return nil, err
		}
		options = options.with(selector, msg)
		s.skipSpace()
	}

	return options, nil
}

func (s *scanner) parseSubmessage(f *frame) (Message, error) {
	if !s.is(s.open) {
		return nil, s.expected(s.symbols.Open)
	}
	s.advance(1)

	msg, err := s.parseMessage(f)
	if err != nil {
		return nil, err
	}

	if !s.is(s.close) {
		return nil, s.expected(s.symbols.Close)
	}
	s.advance(1)
	return msg, nil
}
