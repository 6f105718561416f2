// Package watch re-triggers sidecar staging when build outputs change. It
// uses fsnotify for change detection with a mtime-polling fallback, and
// filters events through the doublestar patterns declared per sidecar.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a manifest directory for changes matching a pattern set.
type Watcher struct {
	// dir is the manifest directory all patterns are relative to.
	dir string
	// patterns are doublestar globs selecting the paths that matter.
	patterns []string
	// events delivers a signal each time a matching path changes.
	// The channel is buffered to 1 so back-to-back writes coalesce.
	events chan struct{}
	// done is closed by [Watcher.Close] to signal goroutines to exit.
	done chan struct{}
	// fsw is the underlying fsnotify watcher; nil when polling.
	fsw *fsnotify.Watcher
	// once ensures [Watcher.Close] is idempotent.
	once sync.Once
	// polling is true when the watcher has fallen back to mtime polling.
	polling atomic.Bool
	// pollInterval is the duration between scans in polling mode.
	pollInterval time.Duration
}

// New creates a Watcher over dir for the given doublestar patterns. It
// watches dir and its immediate subdirectories (fsnotify is not recursive;
// sidecar outputs live at most one level down, in binaries/). If fsnotify
// is unavailable it falls back to polling.
func New(dir string, patterns []string) (*Watcher, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no watch patterns given")
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid watch pattern %q", p)
		}
	}

	w := &Watcher{
		dir:          dir,
		patterns:     patterns,
		events:       make(chan struct{}, 1),
		done:         make(chan struct{}),
		pollInterval: 2 * time.Second,
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.polling.Store(true)
		go w.poll()
		return w, nil
	}

	if err := addWithSubdirs(fsw, dir); err != nil {
		fsw.Close()
		w.polling.Store(true)
		go w.poll()
		return w, nil
	}

	w.fsw = fsw
	go w.watch()
	return w, nil
}

// Events returns the channel signaling matching changes.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Polling reports whether the watcher fell back to mtime polling.
func (w *Watcher) Polling() bool {
	return w.polling.Load()
}

// Close stops the watcher. Safe to call multiple times.
func (w *Watcher) Close() {
	w.once.Do(func() {
		close(w.done)
		if w.fsw != nil {
			w.fsw.Close()
		}
	})
}

// addWithSubdirs registers dir and its first-level subdirectories.
func addWithSubdirs(fsw *fsnotify.Watcher, dir string) error {
	if err := fsw.Add(dir); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			// Missing permission on a subdirectory is not fatal.
			_ = fsw.Add(filepath.Join(dir, e.Name()))
		}
	}
	return nil
}

// matches reports whether an absolute changed path matches any pattern.
func (w *Watcher) matches(path string) bool {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range w.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// watch consumes fsnotify events, forwarding matching writes and creates.
func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// New subdirectory under the manifest dir: watch it too.
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.fsw.Add(ev.Name)
					continue
				}
			}
			if w.matches(ev.Name) {
				w.signal()
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// poll scans the tree for the newest matching mtime at a fixed interval.
func (w *Watcher) poll() {
	last := w.scan()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			if cur := w.scan(); cur.After(last) {
				last = cur
				w.signal()
			}
		}
	}
}

// scan returns the newest mtime among paths matching the pattern set.
func (w *Watcher) scan() time.Time {
	var newest time.Time
	_ = filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !w.matches(path) {
			return nil
		}
		if info, err := d.Info(); err == nil && info.ModTime().After(newest) {
			newest = info.ModTime()
		}
		return nil
	})
	return newest
}

// signal delivers a coalesced event.
func (w *Watcher) signal() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}
