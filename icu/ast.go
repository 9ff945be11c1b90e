package icu

// Node is the interface implemented by all message AST nodes.
type Node interface {
	node()
}

// Message is an ordered sequence of nodes. No two consecutive entries are Text.
type Message []Node

// Text represents a literal run of message text with escapes resolved.
type Text struct {
	Value string
}

func (Text) node() {}

// Variable represents a {id, type, format} placeholder.
type Variable struct {
	ID      string
	Type    string  // empty when no type was given
	Format  string  // only for types that are not sub-message types
	Offset  *int    // only for sub-numeric types with an offset clause
	Options Options // only for sub-message types; always contains "other"
}

func (Variable) node() {}

// Tag represents a <name>...</name> or self-closing <name/> element.
type Tag struct {
	Name     string
	Children Message // nil for self-closing and empty tags
}

func (Tag) node() {}

// NumberRef represents the # back-reference inside a plural or selectordinal
// sub-message. It stands for {ID, number} where ID is the enclosing variable.
type NumberRef struct {
	ID string
}

func (NumberRef) node() {}

// Option is a single selector keyed sub-message.
type Option struct {
	Selector string
	Message  Message
}

// Options is an insertion ordered mapping from selector to sub-message.
type Options []Option

// Get returns the sub-message for selector.
func (o Options) Get(selector string) (Message, bool) {
	for _, opt := range o {
		if opt.Selector == selector {
			return opt.Message, true
		}
	}
	return nil, false
}

// Has reports whether selector is present.
func (o Options) Has(selector string) bool {
	_, ok := o.Get(selector)
	return ok
}

// Selectors returns the selectors in insertion order.
func (o Options) Selectors() []string {
	out := make([]string, len(o))
	for i, opt := range o {
		out[i] = opt.Selector
	}
	return out
}

// with returns o with selector set to m. An existing selector keeps its
// position and has its message replaced.
func (o Options) with(selector string, m Message) Options {
	for i, opt := range o {
		if opt.Selector == selector {
			o[i].Message = m
			return o
		}
	}
	return append(o, Option{Selector: selector, Message: m})
}

// Walk calls fn for every node of msg in depth-first order, descending into
// tag children and sub-messages. Returning false from fn skips the children
// of that node.
func Walk(msg Message, fn func(Node) bool) {
	for _, n := range msg {
		if !fn(n) {
			continue
		}
		switch n := n.(type) {
		case Tag:
			Walk(n.Children, fn)
		case Variable:
			for _, opt := range n.Options {
				Walk(opt.Message, fn)
			}
		}
	}
}

// Placeholders returns the distinct placeholder ids referenced by msg, in
// order of first appearance. The # back-reference counts as a reference to
// its enclosing variable.
func Placeholders(msg Message) []string {
	var ids []string
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	Walk(msg, func(n Node) bool {
		switch n := n.(type) {
		case Variable:
			add(n.ID)
		case NumberRef:
			add(n.ID)
		}
		return true
	})
	return ids
}
