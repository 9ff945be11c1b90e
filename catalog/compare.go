package catalog

import (
	"fmt"
	"slices"

	"github.com/dhamidi/icumsg/icu"
)

type MismatchKind int

const (
	MissingKey         MismatchKind = iota // key absent from the translation
	ExtraKey                               // key absent from the base catalog
	UnknownPlaceholder                     // translation uses a placeholder the base does not
	MissingPlaceholder                     // translation drops a placeholder of the base
)

func (k MismatchKind) String() string {
	switch k {
	case MissingKey:
		return "missing key"
	case ExtraKey:
		return "extra key"
	case UnknownPlaceholder:
		return "unknown placeholder"
	case MissingPlaceholder:
		return "missing placeholder"
	}
	return fmt.Sprintf("MismatchKind(%d)", int(k))
}

// Mismatch is a difference between a base catalog and its translation.
type Mismatch struct {
	Kind        MismatchKind
	Key         string
	Placeholder string // empty for key mismatches
}

func (m Mismatch) String() string {
	if m.Placeholder != "" {
		return fmt.Sprintf("%s: %s {%s}", m.Key, m.Kind, m.Placeholder)
	}
	return fmt.Sprintf("%s: %s", m.Key, m.Kind)
}

// Compare reports keys and placeholders of other that differ from base.
// Entries that fail to parse on either side are left to Check. Mismatches
// are ordered by key.
func Compare(p *icu.Parser, base, other *Catalog) []Mismatch {
	var out []Mismatch

	for _, be := range base.Entries {
		oe, ok := other.Get(be.Key)
		if !ok {
			out = append(out, Mismatch{Kind: MissingKey, Key: be.Key})
			continue
		}

		bm, err := p.ParseString(be.Message)
		if err != nil {
			continue
		}
		om, err := p.ParseString(oe.Message)
		if err != nil {
			continue
		}

		want := icu.Placeholders(bm)
		got := icu.Placeholders(om)
		for _, id := range got {
			if !slices.Contains(want, id) {
				out = append(out, Mismatch{Kind: UnknownPlaceholder, Key: be.Key, Placeholder: id})
			}
		}
		for _, id := range want {
			if !slices.Contains(got, id) {
				out = append(out, Mismatch{Kind: MissingPlaceholder, Key: be.Key, Placeholder: id})
			}
		}
	}

	for _, oe := range other.Entries {
		if _, ok := base.Get(oe.Key); !ok {
			out = append(out, Mismatch{Kind: ExtraKey, Key: oe.Key})
		}
	}

	slices.SortStableFunc(out, func(a, b Mismatch) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		}
		return 0
	})
	return out
}
