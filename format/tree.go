package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/icumsg/icu"
)

// TreeEncoder writes one node per line, children indented by two spaces.
type TreeEncoder struct {
	w   io.Writer
	msg icu.Message
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(msg icu.Message) error {
	e.msg = msg
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if err := writeTree(&sb, e.msg, 0); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func writeTree(sb *strings.Builder, msg icu.Message, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, n := range msg {
		switch n := n.(type) {
		case icu.Text:
			fmt.Fprintf(sb, "%stext %q\n", indent, n.Value)
		case icu.NumberRef:
			fmt.Fprintf(sb, "%sref %s\n", indent, n.ID)
		case icu.Variable:
			sb.WriteString(indent + "var " + n.ID)
			if n.Type != "" {
				sb.WriteString(" " + n.Type)
			}
			if n.Offset != nil {
				fmt.Fprintf(sb, " offset=%d", *n.Offset)
			}
			if n.Format != "" {
				fmt.Fprintf(sb, " format=%q", n.Format)
			}
			sb.WriteByte('\n')
			for _, opt := range n.Options {
				fmt.Fprintf(sb, "%s  %s\n", indent, opt.Selector)
				if err := writeTree(sb, opt.Message, depth+2); err != nil {
					return err
				}
			}
		case icu.Tag:
			fmt.Fprintf(sb, "%stag %s\n", indent, n.Name)
			if err := writeTree(sb, n.Children, depth+1); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported node %T", n)
		}
	}
	return nil
}
