package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/icumsg/icu"
)

// Diagnostic is a message that failed to parse.
type Diagnostic struct {
	File   string
	Locale string
	Key    string

	// Line and Col locate the error in the catalog file, 1-based. Line is 0
	// when the catalog format gave no position.
	Line int
	Col  int

	Pos     int // rune offset of the error within the message
	Message string
	Err     error
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Line, d.Col, d.Key, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.File, d.Key, d.Message)
}

// CheckEntry parses a single entry and returns its diagnostic, if any.
func CheckEntry(p *icu.Parser, c *Catalog, e Entry) (Diagnostic, bool) {
	_, err := p.ParseString(e.Message)
	if err == nil {
		return Diagnostic{}, false
	}

	d := Diagnostic{
		File:    c.Path,
		Locale:  c.Locale,
		Key:     e.Key,
		Message: err.Error(),
		Err:     err,
	}
	var se *icu.SyntaxError
	if errors.As(err, &se) {
		d.Pos = se.Pos
		d.Line, d.Col = entryLineCol(e, se.Pos)
	}
	return d, true
}

// entryLineCol maps a rune offset within the entry's message to a file
// position.
func entryLineCol(e Entry, pos int) (line, col int) {
	if e.Line == 0 {
		return 0, 0
	}
	msgLine, msgCol := icu.LineCol(e.Message, pos)
	if msgLine == 1 && e.Col > 0 {
		return e.Line, e.Col + msgCol - 1
	}
	return e.Line + msgLine - 1, msgCol
}

// Check parses every entry of catalogs using at most workers goroutines
// (unbounded when workers <= 0) and returns the diagnostics ordered by file,
// then key. It stops scheduling and returns the context error once ctx ends.
func Check(ctx context.Context, p *icu.Parser, catalogs []*Catalog, workers int) ([]Diagnostic, error) {
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	var (
		mu    sync.Mutex
		diags []Diagnostic
	)

schedule:
	for _, c := range catalogs {
		for _, e := range c.Entries {
			if gctx.Err() != nil {
				break schedule
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				if d, ok := CheckEntry(p, c, e); ok {
					mu.Lock()
					diags = append(diags, d)
					mu.Unlock()
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(diags, func(i, j int) bool {
		if diags[i].File != diags[j].File {
			return diags[i].File < diags[j].File
		}
		return diags[i].Key < diags[j].Key
	})
	log.Debugf("checked %d catalogs: %d diagnostics", len(catalogs), len(diags))
	return diags, nil
}
