package dataset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leofalp/mocktools/providers/observability"
)

// DefaultDebounce is how long the watcher waits after the last change before
// reloading.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a directory of override files into a Store whenever one of
// them changes. A reload that fails validation leaves the previous dataset in
// place.
type Watcher struct {
	dir      string
	store    *Store
	debounce time.Duration
	observer observability.Provider
	fsw      *fsnotify.Watcher
	reloaded chan string
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithObserver reports reloads and failures to provider.
func WithObserver(provider observability.Provider) WatchOption {
	return func(w *Watcher) {
		w.observer = provider
	}
}

// NewWatcher starts watching dir. Call Run to process changes and Close when
// done if Run is never called.
func NewWatcher(dir string, store *Store, opts ...WatchOption) (*Watcher, error) {
	if store == nil {
		return nil, errors.New("dataset: watcher needs a store")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("dataset: create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("dataset: watch %s: %w", dir, err)
	}

	w := &Watcher{
		dir:      dir,
		store:    store,
		debounce: DefaultDebounce,
		fsw:      fsw,
		reloaded: make(chan string, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Reloaded delivers the version of each dataset the watcher publishes. Values
// are dropped when nobody is receiving.
func (w *Watcher) Reloaded() <-chan string {
	return w.reloaded
}

// Run processes file events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !IsDataFile(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			_ = w.Reload(ctx)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if w.observer != nil {
				w.observer.Warn(ctx, "dataset watcher error",
					observability.String(observability.AttrDatasetPath, w.dir),
					observability.Error(err))
			}
		}
	}
}

// Reload loads the directory now and publishes the result. On failure the
// store is left untouched and the error is returned.
func (w *Watcher) Reload(ctx context.Context) error {
	var span observability.Span
	if w.observer != nil {
		ctx, span = w.observer.StartSpan(ctx, observability.SpanDatasetReload,
			observability.String(observability.AttrDatasetPath, w.dir))
		defer span.End()
	}

	d, err := LoadDir(w.dir)
	if err != nil {
		if w.observer != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, "reload rejected")
			w.observer.Error(ctx, "dataset reload failed, keeping previous snapshot",
				observability.String(observability.AttrDatasetVersion, versionOf(w.store.Snapshot())),
				observability.Error(err))
		}
		return err
	}

	previous := w.store.Swap(d)
	if w.observer != nil {
		span.SetStatus(observability.StatusOK, "")
		w.observer.Counter(observability.MetricDatasetReloads).Add(ctx, 1)
		w.observer.Info(ctx, "dataset reloaded",
			observability.String(observability.AttrDatasetVersion, d.Version),
			observability.String("dataset.previous_version", versionOf(previous)),
			observability.String(observability.AttrDatasetSource, d.Source))
	}

	select {
	case w.reloaded <- d.Version:
	default:
	}
	return nil
}

// Close stops watching without running.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func versionOf(d *Dataset) string {
	if d == nil {
		return ""
	}
	return d.Version
}
