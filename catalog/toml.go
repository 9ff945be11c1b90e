package catalog

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

func decodeTOML(data []byte) ([]Entry, error) {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		var pe toml.ParseError
		if errors.As(err, &pe) {
			return nil, &LoadError{Line: pe.Position.Line, Err: errors.New(pe.Message)}
		}
		return nil, err
	}

	var entries []Entry
	if err := flatten("", tree, &entries); err != nil {
		return nil, err
	}

	positions := tomlPositions(data)
	for i := range entries {
		if p, ok := positions[entries[i].Key]; ok {
			entries[i].Line, entries[i].Col = p.line, p.col
		}
	}
	return entries, nil
}

type position struct {
	line, col int
}

// tomlPositions finds the value of every key = "value" line, qualified by
// the preceding table header. Multi-line strings point at their first line.
func tomlPositions(data []byte) map[string]position {
	positions := make(map[string]position)
	table := ""

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == '#' {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "[[") {
			if end := strings.LastIndex(trimmed, "]"); end > 0 {
				table = normalizeTOMLKey(trimmed[1:end])
			}
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := normalizeTOMLKey(line[:eq])
		if key == "" {
			continue
		}

		rest := line[eq+1:]
		start := eq + 1 + len(rest) - len(strings.TrimLeft(rest, " \t"))
		value := line[start:]
		switch {
		case strings.HasPrefix(value, `"""`), strings.HasPrefix(value, `'''`):
			start += 3
		case strings.HasPrefix(value, `"`), strings.HasPrefix(value, `'`):
			start++
		}
		positions[joinKey(table, key)] = position{
			line: n,
			col:  utf8.RuneCountInString(line[:start]) + 1,
		}
	}
	return positions
}

// normalizeTOMLKey turns a possibly dotted and quoted key into its dotted form.
func normalizeTOMLKey(s string) string {
	parts := strings.Split(s, ".")
	for i, p := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(p), `"'`)
	}
	return strings.Join(parts, ".")
}
