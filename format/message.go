package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/icumsg/icu"
)

// MessageEncoder writes a message back in message syntax. Literal delimiters
// are quoted so that parsing the output with the same symbols yields the
// encoded message again. A # back-reference nested in a tag is written as
// {id, number}, which is what the parser produces for it.
type MessageEncoder struct {
	w       io.Writer
	msg     icu.Message
	symbols icu.Symbols

	open, close, sep, escape      rune
	tagOpen, tagClose, tagClosing rune
	subVar                        rune
}

func NewMessageEncoder(w io.Writer, symbols icu.Symbols) *MessageEncoder {
	first := func(s string) rune {
		r, _ := utf8.DecodeRuneInString(s)
		return r
	}
	return &MessageEncoder{
		w:          w,
		symbols:    symbols,
		open:       first(symbols.Open),
		close:      first(symbols.Close),
		sep:        first(symbols.Sep),
		escape:     first(symbols.Escape),
		tagOpen:    first(symbols.TagOpen),
		tagClose:   first(symbols.TagClose),
		tagClosing: first(symbols.TagClosing),
		subVar:     first(symbols.SubVar),
	}
}

func (e *MessageEncoder) Encode(msg icu.Message) error {
	e.msg = msg
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *MessageEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if err := e.writeMessage(&sb, e.msg, ""); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// String encodes msg without a trailing newline.
func (e *MessageEncoder) String(msg icu.Message) (string, error) {
	var sb strings.Builder
	err := e.writeMessage(&sb, msg, "")
	return sb.String(), err
}

// context of a piece of text, deciding which characters must be quoted
type quoteContext int

const (
	inMessage quoteContext = iota
	inSubnumeric
	inFormat
	inName
	inSelector
	inTagName
)

// writeMessage writes msg. hashID is the id # refers to, empty outside
// sub-numeric sub-messages.
func (e *MessageEncoder) writeMessage(sb *strings.Builder, msg icu.Message, hashID string) error {
	ctx := inMessage
	if hashID != "" {
		ctx = inSubnumeric
	}

	for _, n := range msg {
		switch n := n.(type) {
		case icu.Text:
			e.writeQuoted(sb, n.Value, ctx)

		case icu.NumberRef:
			if n.ID == hashID {
				sb.WriteRune(e.subVar)
			} else if err := e.writeVariable(sb, icu.Variable{ID: n.ID, Type: "number"}); err != nil {
				return err
			}

		case icu.Variable:
			if err := e.writeVariable(sb, n); err != nil {
				return err
			}

		case icu.Tag:
			sb.WriteRune(e.tagOpen)
			e.writeQuoted(sb, n.Name, inTagName)
			if len(n.Children) == 0 {
				sb.WriteRune(e.tagClosing)
				sb.WriteRune(e.tagClose)
				continue
			}
			sb.WriteRune(e.tagClose)
			if err := e.writeMessage(sb, n.Children, ""); err != nil {
				return err
			}
			sb.WriteRune(e.tagOpen)
			sb.WriteRune(e.tagClosing)
			e.writeQuoted(sb, n.Name, inTagName)
			sb.WriteRune(e.tagClose)

		default:
			return fmt.Errorf("unsupported node %T", n)
		}
	}
	return nil
}

func (e *MessageEncoder) writeVariable(sb *strings.Builder, v icu.Variable) error {
	if v.ID == "" {
		return fmt.Errorf("placeholder without id")
	}

	sb.WriteRune(e.open)
	e.writeQuoted(sb, v.ID, inName)
	if v.Type == "" {
		sb.WriteRune(e.close)
		return nil
	}

	sb.WriteRune(e.sep)
	sb.WriteRune(' ')
	e.writeQuoted(sb, v.Type, inName)

	if v.Options == nil && v.Format == "" {
		sb.WriteRune(e.close)
		return nil
	}

	sb.WriteRune(e.sep)
	sb.WriteRune(' ')

	if v.Options == nil {
		e.writeQuoted(sb, v.Format, inFormat)
		sb.WriteRune(e.close)
		return nil
	}

	if v.Offset != nil {
		sb.WriteString(e.symbols.Offset)
		sb.WriteString(strconv.Itoa(*v.Offset))
		sb.WriteRune(' ')
	}

	hashID := ""
	if isSubnumeric(e.symbols, v.Type) {
		hashID = v.ID
	}
	for i, opt := range v.Options {
		if i > 0 {
			sb.WriteRune(' ')
		}
		e.writeQuoted(sb, opt.Selector, inSelector)
		sb.WriteRune(' ')
		sb.WriteRune(e.open)
		if err := e.writeMessage(sb, opt.Message, hashID); err != nil {
			return err
		}
		sb.WriteRune(e.close)
	}
	sb.WriteRune(e.close)
	return nil
}

func isSubnumeric(symbols icu.Symbols, typ string) bool {
	for _, t := range symbols.SubnumericTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// writeQuoted writes s, grouping characters that are significant in ctx into
// quoted runs and doubling every escape character.
func (e *MessageEncoder) writeQuoted(sb *strings.Builder, s string, ctx quoteContext) {
	quoting := false
	for _, r := range s {
		switch {
		case r == e.escape:
			sb.WriteRune(r)
			sb.WriteRune(r)
		case e.special(r, ctx):
			if !quoting {
				sb.WriteRune(e.escape)
				quoting = true
			}
			sb.WriteRune(r)
		default:
			if quoting {
				sb.WriteRune(e.escape)
				quoting = false
			}
			sb.WriteRune(r)
		}
	}
	if quoting {
		sb.WriteRune(e.escape)
	}
}

func (e *MessageEncoder) special(r rune, ctx quoteContext) bool {
	if r == e.open || r == e.close {
		return true
	}
	if e.symbols.AllowTags && r == e.tagOpen {
		return true
	}
	switch ctx {
	case inSubnumeric:
		return r == e.subVar
	case inName:
		return r == e.sep || icu.IsSpace(r)
	case inSelector:
		return icu.IsSpace(r)
	case inTagName:
		return r == e.sep || r == e.tagClose || r == e.tagClosing || icu.IsSpace(r)
	}
	return false
}
