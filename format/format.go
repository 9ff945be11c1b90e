// Package format encodes parsed messages for other tools: a plain JSON tree,
// canonical message syntax and an indented debugging tree.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/icumsg/icu"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(msg icu.Message) error
}

// NewEncoder returns the encoder registered under name ("json", "message",
// "tree"). symbols are used by the message encoder.
func NewEncoder(name string, w io.Writer, symbols icu.Symbols) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "message":
		return NewMessageEncoder(w, symbols), nil
	case "tree":
		return NewTreeEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", name)
	}
}
