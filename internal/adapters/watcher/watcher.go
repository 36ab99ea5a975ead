// Package watcher re-runs index generation when a source tree changes.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"indexmd/internal/adapters/filesystem"
	"indexmd/internal/domain"
	"indexmd/internal/ports"
)

// DefaultDebounce is the quiet period before a run starts
const DefaultDebounce = 2 * time.Second

// Watcher watches a source root recursively
type Watcher struct {
	root          string
	debounce      time.Duration
	includeHidden bool
	logger        ports.Logger
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the quiet period
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithHidden also watches dot-directories
func WithHidden(include bool) Option {
	return func(w *Watcher) { w.includeHidden = include }
}

// WithLogger sets the progress logger
func WithLogger(l ports.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a Watcher for root
func New(root string, opts ...Option) *Watcher {
	w := &Watcher{root: root, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Relevant reports whether an event on path should trigger a run.
// Sidecars and temp files are written by the run itself.
func (w *Watcher) Relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(event.Name)
	if domain.IsSidecarName(name) || filesystem.IsTempName(name) {
		return false
	}
	if !w.includeHidden && strings.HasPrefix(name, ".") {
		return false
	}
	return true
}

// Run calls run once per burst of changes until ctx is done. Runs never
// overlap; changes during a run schedule one more run.
func (w *Watcher) Run(ctx context.Context, run func(context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addRecursive(fsw, w.root); err != nil {
		return err
	}

	trigger := make(chan struct{}, 1)
	go w.collect(ctx, fsw, trigger)

	w.logf("watching %s", w.root)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			if err := run(ctx); err != nil {
				w.logf("run failed: %v", err)
			}
		}
	}
}

// collect debounces events into trigger
func (w *Watcher) collect(ctx context.Context, fsw *fsnotify.Watcher, trigger chan<- struct{}) {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.Relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(fsw, event.Name); err != nil {
						w.logf("watch %s: %v", event.Name, err)
					}
				}
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			select {
			case trigger <- struct{}{}:
			default: // a run is already pending
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logf("watch error: %v", err)
		}
	}
}

func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && !w.includeHidden && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) logf(format string, args ...any) {
	if w.logger != nil {
		w.logger.Printf(format, args...)
	}
}
