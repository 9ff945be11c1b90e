package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return nil, nil // empty file
	}

	var entries []Entry
	if err := walkYAML("", &doc, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func walkYAML(prefix string, n *yaml.Node, out *[]Entry) error {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			if err := walkYAML(prefix, c, out); err != nil {
				return err
			}
		}
	case yaml.AliasNode:
		return walkYAML(prefix, n.Alias, out)
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if err := walkYAML(joinKey(prefix, key.Value), value, out); err != nil {
				return err
			}
		}
	case yaml.ScalarNode:
		if n.Tag != "!!str" {
			return &LoadError{Line: n.Line, Err: fmt.Errorf("key %s: expected string, found %s", prefix, n.Tag)}
		}
		e := Entry{Key: prefix, Message: n.Value, Line: n.Line, Col: n.Column}
		switch n.Style {
		case yaml.DoubleQuotedStyle, yaml.SingleQuotedStyle:
			e.Col++
		case yaml.LiteralStyle, yaml.FoldedStyle:
			// the content starts on the line after the indicator
			e.Line++
			e.Col = 0
		}
		*out = append(*out, e)
	default:
		return &LoadError{Line: n.Line, Err: fmt.Errorf("key %s: expected string or mapping", prefix)}
	}
	return nil
}
