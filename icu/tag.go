package icu

type tagKind uint8

const (
	tagNode    tagKind = iota // a complete element
	tagClosed                 // the closing tag of the enclosing element
	tagLiteral                // not a tag after all; text holds the consumed input
)

type tagResult struct {
	kind tagKind
	node Node
	text string
}

// parseTag parses an opening, self-closing or closing tag at the cursor.
// Input that turns out not to be a tag is handed back as literal text.
func (s *scanner) parseTag(parent *frame) (tagResult, error) {
	start := s.pos
	s.advance(1)

	closing := false
	if s.is(s.tagClosing) {
		if parent == nil || parent.tag == nil {
			return tagResult{}, s.unexpected(string(s.tagClosing), s.pos)
		}
		closing = true
		s.advance(1)
		s.skipSpace()
	}

	name := s.parseText(false, scanTagName)
	if name == "" {
		return tagResult{kind: tagLiteral, text: s.slice(start)}, nil
	}

	s.skipSpace()

	if closing {
		if !s.is(s.tagClose) {
			return tagResult{}, s.expected(s.symbols.TagClose)
		}
		if name != parent.tag.Name {
			return tagResult{}, s.unexpected("tag mismatch", start)
		}
		s.advance(1)
		return tagResult{kind: tagClosed}, nil
	}

	selfClosing := false
	if s.is(s.tagClosing) {
		selfClosing = true
		s.advance(1)
	}

	if !s.is(s.tagClose) {
		return tagResult{kind: tagLiteral, text: s.slice(start)}, nil
	}
	s.advance(1)

	tag := Tag{Name: name}
	if selfClosing {
		return tagResult{node: tag}, nil
	}

	f := &frame{tag: &tag}
	children, err := s.parseMessage(f)
	if err != nil {
		return tagResult{}, err
	}
	if !f.closed {
		return tagResult{}, s.expected("closing tag")
	}
	if len(children) > 0 {
		tag.Children = children
	}

	return tagResult{node: tag}, nil
}
