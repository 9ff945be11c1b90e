package icu

import "unicode/utf8"

// DefaultMaxDepth is the nesting limit used when Symbols.MaxDepth is not positive.
const DefaultMaxDepth = 256

// Symbols configures the delimiters and type classification of a Parser.
// Delimiters must be exactly one character each and pairwise distinct.
type Symbols struct {
	Open       string `toml:"open" yaml:"open" json:"open"`
	Close      string `toml:"close" yaml:"close" json:"close"`
	TagOpen    string `toml:"tag_open" yaml:"tag_open" json:"tag_open"`
	TagClose   string `toml:"tag_close" yaml:"tag_close" json:"tag_close"`
	TagClosing string `toml:"tag_closing" yaml:"tag_closing" json:"tag_closing"`
	Sep        string `toml:"sep" yaml:"sep" json:"sep"`
	SubVar     string `toml:"sub_var" yaml:"sub_var" json:"sub_var"`
	Escape     string `toml:"escape" yaml:"escape" json:"escape"`

	// Offset is the keyword introducing the offset clause of sub-numeric types.
	Offset string `toml:"offset" yaml:"offset" json:"offset"`

	// SubnumericTypes accept an offset clause and the # back-reference.
	SubnumericTypes []string `toml:"subnumeric_types" yaml:"subnumeric_types" json:"subnumeric_types"`
	// SubmessageTypes require selector keyed sub-messages instead of a format.
	SubmessageTypes []string `toml:"submessage_types" yaml:"submessage_types" json:"submessage_types"`

	AllowTags bool `toml:"allow_tags" yaml:"allow_tags" json:"allow_tags"`
	MaxDepth  int  `toml:"max_depth" yaml:"max_depth" json:"max_depth"`
}

// DefaultSymbols returns the standard ICU MessageFormat symbols.
func DefaultSymbols() Symbols {
	return Symbols{
		Open:            "{",
		Close:           "}",
		TagOpen:         "<",
		TagClose:        ">",
		TagClosing:      "/",
		Sep:             ",",
		SubVar:          "#",
		Escape:          "'",
		Offset:          "offset:",
		SubnumericTypes: []string{"plural", "selectordinal"},
		SubmessageTypes: []string{"plural", "selectordinal", "select"},
		AllowTags:       true,
		MaxDepth:        DefaultMaxDepth,
	}
}

type delimiter struct {
	name  string
	value string
}

func (s Symbols) delimiters() []delimiter {
	return []delimiter{
		{"OPEN", s.Open},
		{"CLOSE", s.Close},
		{"TAG_OPEN", s.TagOpen},
		{"TAG_CLOSE", s.TagClose},
		{"TAG_CLOSING", s.TagClosing},
		{"SEP", s.Sep},
		{"SUB_VAR", s.SubVar},
		{"ESCAPE", s.Escape},
	}
}

// Validate checks that every delimiter is a single character and that no
// two delimiters share a character.
func (s Symbols) Validate() error {
	delims := s.delimiters()
	for i, d := range delims {
		if utf8.RuneCountInString(d.value) != 1 {
			return &ConfigurationError{Options: []string{d.name}, Reason: "must be a single character"}
		}
		for _, other := range delims[i+1:] {
			if other.value == d.value {
				return &ConfigurationError{Options: []string{d.name, other.name}, Reason: "cannot match"}
			}
		}
	}
	if s.Offset == "" {
		return &ConfigurationError{Options: []string{"OFFSET"}, Reason: "must not be empty"}
	}
	return nil
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
