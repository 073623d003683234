package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the file must stay quiet before a change fires.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a single snapshot file and fires when its content changes.
// The parent directory is watched so that editors which save by renaming a
// temp file over the original are still seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	tick      time.Duration
	log       zerolog.Logger

	last    uint64
	pending time.Time
	dirty   bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Values <= 0 keep the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
			if d < w.tick {
				w.tick = d
			}
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(w *Watcher) {
		w.log = log
	}
}

// NewWatcher starts watching path. Events are buffered from this point on,
// so changes made before Run is called are not lost.
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		tick:     100 * time.Millisecond,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	fp, err := Fingerprint(abs)
	if err != nil {
		return nil, err
	}
	w.last = fp

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.fsWatcher = fsWatcher
	return w, nil
}

// Fingerprint returns the xxhash of the file's content.
func Fingerprint(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(data), nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks until ctx is done, calling onChange each time the file settles
// with content different from the last run. Errors from onChange are logged
// and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("watch error")

		case now := <-ticker.C:
			if !w.dirty || now.Sub(w.pending) < w.debounce {
				continue
			}
			w.dirty = false
			if !w.changed() {
				continue
			}
			if err := onChange(ctx); err != nil {
				w.log.Error().Err(err).Str("path", w.path).Msg("change handler failed")
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	w.log.Debug().Str("op", event.Op.String()).Msg("snapshot event")
	w.pending = time.Now()
	w.dirty = true
}

// changed refreshes the fingerprint and reports whether it moved.
func (w *Watcher) changed() bool {
	fp, err := Fingerprint(w.path)
	if err != nil {
		// mid-rename; the Create that follows marks it dirty again
		w.log.Debug().Err(err).Msg("snapshot unreadable")
		return false
	}
	if fp == w.last {
		w.log.Debug().Msg("snapshot content unchanged")
		return false
	}
	w.last = fp
	return true
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}
