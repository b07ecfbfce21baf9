package levelpack

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// ReloadFunc receives a freshly loaded level set, or the error that
// prevented loading it.
type ReloadFunc func(layouts []breakout.Layout, err error)

// Watcher reloads a level directory when its *.lvl files change.
type Watcher struct {
	dir      string
	fw       *fsnotify.Watcher
	Debounce time.Duration
}

// NewWatcher starts watching dir. Call Run to receive reloads.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("levelpack: watch: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("levelpack: watch %s: %w", dir, err)
	}
	return &Watcher{dir: dir, fw: fw, Debounce: DefaultDebounce}, nil
}

// Run calls fn after each settled burst of level file changes until ctx
// is done. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, fn ReloadFunc) error {
	defer w.fw.Close()

	timer := time.NewTimer(w.Debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			timer.Reset(w.Debounce)

		case <-timer.C:
			fn(LoadDir(w.dir))

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("levelpack: watch %s: %w", w.dir, err))
		}
	}
}

// Close stops watching without running.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

// Watch watches dir and calls fn on every reload until ctx is done.
func Watch(ctx context.Context, dir string, fn ReloadFunc) error {
	w, err := NewWatcher(dir)
	if err != nil {
		return err
	}
	return w.Run(ctx, fn)
}

func relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), Ext) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
