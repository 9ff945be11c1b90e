// Package catalog loads translation catalogs and checks the messages they
// contain.
//
// A catalog is a TOML, YAML or JSON file mapping keys to message strings.
// Nested tables flatten to dotted keys and the file stem names the locale,
// so locales/de.yaml holding
//
//	errors:
//	  notFound: "{name} wurde nicht gefunden"
//
// yields the entry errors.notFound for locale de.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("icumsg.catalog")

// Entry is a single message of a catalog. Line and Col locate the first
// character of the message in the file and are 0 when unknown.
type Entry struct {
	Key     string
	Message string
	Line    int
	Col     int
}

type Catalog struct {
	Path    string
	Locale  string
	Entries []Entry // sorted by key
}

// Get returns the entry stored under key.
func (c *Catalog) Get(key string) (Entry, bool) {
	i := sort.Search(len(c.Entries), func(i int) bool { return c.Entries[i].Key >= key })
	if i < len(c.Entries) && c.Entries[i].Key == key {
		return c.Entries[i], true
	}
	return Entry{}, false
}

func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		keys[i] = e.Key
	}
	return keys
}

// LoadError reports a catalog that could not be decoded.
type LoadError struct {
	Path string
	Line int // 0 when the decoder gave no position
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ErrUnsupported is wrapped by errors for files that are not catalogs.
var ErrUnsupported = errors.New("unsupported catalog format")

// Supported reports whether path has a catalog extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// isCatalogFile reports whether a directory entry named name is loaded by
// LoadDir and the Watcher. Hidden files are skipped.
func isCatalogFile(name string) bool {
	return !strings.HasPrefix(name, ".") && Supported(name)
}

// Load reads and decodes the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(path, data)
}

// Decode decodes catalog data. path selects the format by extension and
// names the locale; the file itself is not read.
func Decode(path string, data []byte) (*Catalog, error) {
	var (
		entries []Entry
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		entries, err = decodeTOML(data)
	case ".yaml", ".yml":
		entries, err = decodeYAML(data)
	case ".json":
		entries, err = decodeJSON(data)
	default:
		return nil, &LoadError{Path: path, Err: ErrUnsupported}
	}
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	base := filepath.Base(path)
	c := &Catalog{
		Path:    path,
		Locale:  strings.TrimSuffix(base, filepath.Ext(base)),
		Entries: entries,
	}
	log.Debugf("decoded %s: %d entries for locale %s", path, len(entries), c.Locale)
	return c, nil
}

// LoadDir loads every catalog directly inside dir, in file name order.
// Files that fail to load are skipped and their errors joined.
func LoadDir(dir string) ([]*Catalog, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var catalogs []*Catalog
	var errs []error
	for _, de := range dirEntries {
		if de.IsDir() || !isCatalogFile(de.Name()) {
			continue
		}
		c, err := Load(filepath.Join(dir, de.Name()))
		if err != nil {
			log.Warningf("skipping %s: %v", de.Name(), err)
			errs = append(errs, err)
			continue
		}
		catalogs = append(catalogs, c)
	}
	return catalogs, errors.Join(errs...)
}

// flatten walks nested maps and returns one entry per string leaf.
func flatten(prefix string, v any, out *[]Entry) error {
	switch v := v.(type) {
	case string:
		*out = append(*out, Entry{Key: prefix, Message: v})
	case map[string]any:
		for k, child := range v {
			if err := flatten(joinKey(prefix, k), child, out); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("key %s: expected string or table, found %T", prefix, v)
	}
	return nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
