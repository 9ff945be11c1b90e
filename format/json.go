package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dhamidi/icumsg/icu"
)

// JSONEncoder writes a message as a plain JSON tree:
//
//	"text"                              text
//	{"v":"id","t":"type","f":"format"}  placeholder; "f" is a number for offsets
//	{"v":"n","t":"plural","o":{...}}    sub-messages keyed by selector, in order
//	{"v":"n","t":"number","#":true}     the # back-reference
//	{"n":"b","c":[...]}                 tag with optional children
type JSONEncoder struct {
	w       io.Writer
	msg     icu.Message
	compact bool
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

// Compact disables indentation.
func (e *JSONEncoder) Compact() *JSONEncoder {
	e.compact = true
	return e
}

func (e *JSONEncoder) Encode(msg icu.Message) error {
	e.msg = msg
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONMessage(&buf, e.msg); err != nil {
		return nil, err
	}
	if e.compact {
		return buf.Bytes(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeJSONMessage(buf *bytes.Buffer, msg icu.Message) error {
	buf.WriteByte('[')
	for i, n := range msg {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONNode(buf, n); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeJSONNode(buf *bytes.Buffer, n icu.Node) error {
	switch n := n.(type) {
	case icu.Text:
		writeJSONString(buf, n.Value)

	case icu.NumberRef:
		buf.WriteString(`{"v":`)
		writeJSONString(buf, n.ID)
		buf.WriteString(`,"t":"number","#":true}`)

	case icu.Variable:
		buf.WriteString(`{"v":`)
		writeJSONString(buf, n.ID)
		if n.Type != "" {
			buf.WriteString(`,"t":`)
			writeJSONString(buf, n.Type)
		}
		if n.Offset != nil {
			buf.WriteString(`,"f":`)
			buf.WriteString(strconv.Itoa(*n.Offset))
		} else if n.Format != "" {
			buf.WriteString(`,"f":`)
			writeJSONString(buf, n.Format)
		}
		if n.Options != nil {
			buf.WriteString(`,"o":{`)
			for i, opt := range n.Options {
				if i > 0 {
					buf.WriteByte(',')
				}
				writeJSONString(buf, opt.Selector)
				buf.WriteByte(':')
				if err := writeJSONMessage(buf, opt.Message); err != nil {
					return err
				}
			}
			buf.WriteByte('}')
		}
		buf.WriteByte('}')

	case icu.Tag:
		buf.WriteString(`{"n":`)
		writeJSONString(buf, n.Name)
		if len(n.Children) > 0 {
			buf.WriteString(`,"c":`)
			if err := writeJSONMessage(buf, n.Children); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	default:
		return fmt.Errorf("unsupported node %T", n)
	}
	return nil
}

// writeJSONString writes s without the HTML escaping of json.Marshal, so tag
// characters stay readable.
func writeJSONString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
}

// DecodeJSON reads a message written by JSONEncoder.
func DecodeJSON(data []byte) (icu.Message, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	msg, err := decodeJSONMessage(dec)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decode json: trailing data after message")
	}
	return msg, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %s, got %v", want, tok)
	}
	return nil
}

func decodeString(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %v", tok)
	}
	return s, nil
}

func decodeJSONMessage(dec *json.Decoder) (icu.Message, error) {
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var msg icu.Message
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case string:
			msg = append(msg, icu.Text{Value: t})
		case json.Delim:
			if t != '{' {
				return nil, fmt.Errorf("unexpected %s in message", t)
			}
			node, err := decodeJSONObject(dec)
			if err != nil {
				return nil, err
			}
			msg = append(msg, node)
		default:
			return nil, fmt.Errorf("unexpected %v in message", tok)
		}
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return msg, nil
}

// decodeJSONObject decodes a placeholder or tag whose opening brace has been read.
func decodeJSONObject(dec *json.Decoder) (icu.Node, error) {
	var (
		v        icu.Variable
		tag      icu.Tag
		isTag    bool
		isRef    bool
		hasID    bool
		hasFmt   bool
		fmtValue any
	)

	for dec.More() {
		key, err := decodeString(dec)
		if err != nil {
			return nil, err
		}

		switch key {
		case "v":
			if v.ID, err = decodeString(dec); err != nil {
				return nil, err
			}
			hasID = true
		case "t":
			if v.Type, err = decodeString(dec); err != nil {
				return nil, err
			}
		case "f":
			if fmtValue, err = dec.Token(); err != nil {
				return nil, err
			}
			hasFmt = true
		case "o":
			if v.Options, err = decodeJSONOptions(dec); err != nil {
				return nil, err
			}
		case "#":
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			isRef, _ = tok.(bool)
		case "n":
			if tag.Name, err = decodeString(dec); err != nil {
				return nil, err
			}
			isTag = true
		case "c":
			if tag.Children, err = decodeJSONMessage(dec); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown key %q", key)
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	switch {
	case isTag:
		if len(tag.Children) == 0 {
			tag.Children = nil
		}
		return tag, nil
	case !hasID:
		return nil, errors.New(`object has neither "v" nor "n"`)
	case isRef:
		return icu.NumberRef{ID: v.ID}, nil
	}

	if hasFmt {
		switch f := fmtValue.(type) {
		case string:
			v.Format = f
		case json.Number:
			n, err := strconv.Atoi(f.String())
			if err != nil {
				return nil, fmt.Errorf("offset %s: %w", f, err)
			}
			v.Offset = &n
		default:
			return nil, fmt.Errorf(`unexpected "f" value %v`, f)
		}
	}
	return v, nil
}

func decodeJSONOptions(dec *json.Decoder) (icu.Options, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	options := icu.Options{}
	for dec.More() {
		selector, err := decodeString(dec)
		if err != nil {
			return nil, err
		}
		msg, err := decodeJSONMessage(dec)
		if err != nil {
			return nil, err
		}
		options = append(options, icu.Option{Selector: selector, Message: msg})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return options, nil
}
