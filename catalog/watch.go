package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dhamidi/icumsg/icu"
)

// DefaultDebounce is how long a file must stay quiet before it is re-checked.
const DefaultDebounce = 100 * time.Millisecond

// Report is the outcome of re-checking one catalog file.
type Report struct {
	Path        string
	Diagnostics []Diagnostic
	Err         error // the file could not be loaded
	Removed     bool
}

// Watcher re-checks the catalogs of a directory whenever they change.
type Watcher struct {
	dir      string
	parser   *icu.Parser
	onReport func(Report)

	Debounce time.Duration
}

func NewWatcher(dir string, p *icu.Parser, onReport func(Report)) *Watcher {
	return &Watcher{
		dir:      dir,
		parser:   p,
		onReport: onReport,
		Debounce: DefaultDebounce,
	}
}

// Run checks every catalog in the directory once and then follows file
// system events until ctx ends.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	log.Infof("watching %s", w.dir)

	if err := w.scan(ctx); err != nil {
		return err
	}

	pending := make(map[string]*time.Timer)
	fire := make(chan string)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Infof("stopped watching %s", w.dir)
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !isCatalogFile(filepath.Base(event.Name)) {
				continue
			}

			switch {
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				if t, ok := pending[event.Name]; ok {
					t.Stop()
					delete(pending, event.Name)
				}
				log.Infof("%s removed", event.Name)
				w.onReport(Report{Path: event.Name, Removed: true})

			case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
				if t, ok := pending[event.Name]; ok {
					t.Reset(w.Debounce)
					continue
				}
				name := event.Name
				pending[name] = time.AfterFunc(w.Debounce, func() {
					select {
					case fire <- name:
					case <-ctx.Done():
					}
				})
			}

		case name := <-fire:
			delete(pending, name)
			if _, err := os.Stat(name); err != nil {
				continue
			}
			w.check(ctx, name)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch %s: %v", w.dir, err)
		}
	}
}

func (w *Watcher) scan(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}
	for _, de := range entries {
		if de.IsDir() || !isCatalogFile(de.Name()) {
			continue
		}
		w.check(ctx, filepath.Join(w.dir, de.Name()))
	}
	return nil
}

func (w *Watcher) check(ctx context.Context, path string) {
	c, err := Load(path)
	if err != nil {
		log.Warningf("reload %s: %v", path, err)
		w.onReport(Report{Path: path, Err: err})
		return
	}

	diags, err := Check(ctx, w.parser, []*Catalog{c}, 0)
	if err != nil {
		return
	}
	log.Debugf("rechecked %s: %d diagnostics", path, len(diags))
	w.onReport(Report{Path: path, Diagnostics: diags})
}
