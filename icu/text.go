package icu

import "strings"

// scanMode selects which characters end a text run besides the braces.
type scanMode uint8

const (
	stopAtSeparator scanMode = 1 << iota
	stopAtSpace
	stopAtTagChars
)

const (
	scanMessage  scanMode = 0
	scanFormat   scanMode = 0
	scanName              = stopAtSeparator | stopAtSpace
	scanSelector          = stopAtSpace
	scanTagName           = stopAtSeparator | stopAtSpace | stopAtTagChars
)

// parseText consumes literal text up to the next significant character,
// resolving escapes. hash makes the sub-message back-reference significant.
func (s *scanner) parseText(hash bool, mode scanMode) string {
	var sb strings.Builder

	for !s.eof() {
		ch := s.peek()
		if s.stopsText(ch, hash, mode) {
			break
		}

		if ch != s.escape {
			sb.WriteRune(ch)
			s.advance(1)
			continue
		}

		s.advance(1)
		if s.eof() {
			sb.WriteRune(ch)
			break
		}

		next := s.peek()
		switch {
		case next == s.escape:
			sb.WriteRune(next)
			s.advance(1)
		case s.escapable(next, hash, mode):
			s.scanQuoted(&sb)
		default:
			sb.WriteRune(ch)
		}
	}

	return sb.String()
}

// stopsText reports whether ch ends a text run in the given mode.
func (s *scanner) stopsText(ch rune, hash bool, mode scanMode) bool {
	switch s.roles[ch] {
	case roleOpen, roleClose:
		return true
	case roleTagOpen:
		if !s.allowTags {
			break
		}
		// A tag opener followed by whitespace can never start a tag, so
		// message text keeps it.
		return mode&stopAtTagChars != 0 || !IsSpace(s.peekAt(1))
	case roleTagClose, roleTagClosing:
		if s.allowTags && mode&stopAtTagChars != 0 {
			return true
		}
	case roleSep:
		if mode&stopAtSeparator != 0 {
			return true
		}
	case roleSubVar:
		if hash {
			return true
		}
	}
	return mode&stopAtSpace != 0 && IsSpace(ch)
}

// escapable reports whether an escape followed by next opens a quoted run.
// Inside placeholder headers and tag names every character may be quoted.
func (s *scanner) escapable(next rune, hash bool, mode scanMode) bool {
	if mode&(stopAtSeparator|stopAtSpace) != 0 {
		return true
	}
	switch s.roles[next] {
	case roleOpen, roleClose:
		return true
	case roleTagOpen:
		return s.allowTags
	case roleTagClose, roleTagClosing:
		return s.allowTags && mode&stopAtTagChars != 0
	case roleSubVar:
		return hash
	}
	return false
}

// scanQuoted copies a quoted run starting at the cursor. The run ends at the
// next lone escape, which is consumed, or at end of input. A doubled escape
// inside the run is a literal escape.
func (s *scanner) scanQuoted(sb *strings.Builder) {
	sb.WriteRune(s.peek())
	s.advance(1)

	for !s.eof() {
		ch := s.peek()
		if ch == s.escape {
			if s.peekAt(1) == s.escape {
				sb.WriteRune(ch)
				s.advance(2)
				continue
			}
			s.advance(1)
			return
		}
		sb.WriteRune(ch)
		s.advance(1)
	}
}
