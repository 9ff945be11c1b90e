package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// decodeJSON reads a catalog object token by token so that every message
// keeps the offset of its opening quote.
func decodeJSON(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	d := &jsonCatalogDecoder{dec: dec, data: data}

	tok, err := dec.Token()
	if err != nil {
		return nil, d.wrap(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, d.wrap(errors.New("catalog must be an object"))
	}
	if err := d.object(""); err != nil {
		return nil, d.wrap(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, d.wrap(errors.New("trailing data after catalog"))
	}
	return d.entries, nil
}

type jsonCatalogDecoder struct {
	dec     *json.Decoder
	data    []byte
	entries []Entry
}

// object reads the members of an object whose opening brace has been read.
func (d *jsonCatalogDecoder) object(prefix string) error {
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return err
		}
		key := joinKey(prefix, tok.(string))

		start := d.valueStart(d.dec.InputOffset())
		tok, err = d.dec.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case string:
			line, col := offsetLineCol(d.data, start+1)
			d.entries = append(d.entries, Entry{Key: key, Message: v, Line: line, Col: col})
		case json.Delim:
			if v != '{' {
				return fmt.Errorf("key %s: expected string or object, found array", key)
			}
			if err := d.object(key); err != nil {
				return err
			}
		default:
			return fmt.Errorf("key %s: expected string or object, found %v", key, v)
		}
	}
	_, err := d.dec.Token() // closing brace
	return err
}

// valueStart skips the whitespace and colon that follow a member name.
func (d *jsonCatalogDecoder) valueStart(off int64) int {
	i := int(off)
	for i < len(d.data) {
		switch d.data[i] {
		case ' ', '\t', '\r', '\n', ':':
			i++
			continue
		}
		break
	}
	return i
}

func (d *jsonCatalogDecoder) wrap(err error) error {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		line, _ := offsetLineCol(d.data, int(se.Offset))
		return &LoadError{Line: line, Err: err}
	}
	return err
}

// offsetLineCol converts a byte offset into a 1-based line and rune column.
func offsetLineCol(data []byte, off int) (line, col int) {
	if off > len(data) {
		off = len(data)
	}
	head := data[:off]
	line = bytes.Count(head, []byte{'\n'}) + 1
	lineStart := bytes.LastIndexByte(head, '\n') + 1
	return line, utf8.RuneCount(head[lineStart:]) + 1
}
