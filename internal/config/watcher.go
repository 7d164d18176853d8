package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads one config file through a typed loader and hands each
// successfully loaded value to the subscribed handlers in the order they
// subscribed.
//
// The parent directory is watched, not the file, so editors that save by
// renaming a temp file over the original are still seen.
type Watcher[T any] struct {
	path     string
	debounce time.Duration
	loader   func(path string) (T, error)
	onError  func(error)
	logger   *slog.Logger

	mu       sync.Mutex
	handlers *orderedmap.OrderedMap[uint64, func(T)]
	nextID   uint64

	reloads  atomic.Uint64
	fsw      *fsnotify.Watcher
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption[T any] func(*Watcher[T])

func WithDebounce[T any](d time.Duration) WatcherOption[T] {
	return func(w *Watcher[T]) { w.debounce = d }
}

// WithErrorHandler is called with every failed load. Failures are always
// logged; the previous value stays in effect.
func WithErrorHandler[T any](handler func(error)) WatcherOption[T] {
	return func(w *Watcher[T]) { w.onError = handler }
}

// NewConfigWatcher creates a watcher for path. Nothing is watched until Start.
func NewConfigWatcher[T any](
	path string,
	loader func(path string) (T, error),
	logger *slog.Logger,
	opts ...WatcherOption[T],
) *Watcher[T] {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	w := &Watcher[T]{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		loader:   loader,
		logger:   logger,
		handlers: orderedmap.New[uint64, func(T)](),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnReload subscribes handler and returns a function that unsubscribes it.
func (w *Watcher[T]) OnReload(handler func(T)) func() {
	w.mu.Lock()
	w.nextID++
	id := w.nextID
	w.handlers.Set(id, handler)
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		w.handlers.Delete(id)
		w.mu.Unlock()
	}
}

// Reloads reports how many loads reached the handlers.
func (w *Watcher[T]) Reloads() uint64 {
	return w.reloads.Load()
}

func (w *Watcher[T]) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return err
	}
	w.fsw = fsw

	w.logger.Info("Config watcher started", "path", w.path, "debounce", w.debounce)
	go w.loop()
	return nil
}

// Stop ends the event loop and waits for it. Safe to call more than once
// and before Start.
func (w *Watcher[T]) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.quit)
		if w.fsw == nil {
			return
		}
		err = w.fsw.Close()
		<-w.done
	})
	return err
}

func (w *Watcher[T]) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher[T]) loop() {
	defer close(w.done)

	// Stopped until the first relevant event arms it.
	settle := time.NewTimer(time.Hour)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-w.quit:
			w.logger.Debug("Config watcher stopped")
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.logger.Debug("Config file change detected", "op", event.Op.String())
				settle.Reset(w.debounce)
			}

		case <-settle.C:
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Config watcher error", "error", err)
		}
	}
}

func (w *Watcher[T]) reload() {
	value, err := w.loader(w.path)
	if err != nil {
		w.logger.Warn("Config reload rejected, keeping previous settings", "path", w.path, "error", err)
		if w.onError != nil {
			w.onError(err)
		}
		return
	}

	w.mu.Lock()
	handlers := make([]func(T), 0, w.handlers.Len())
	for pair := w.handlers.Oldest(); pair != nil; pair = pair.Next() {
		handlers = append(handlers, pair.Value)
	}
	w.mu.Unlock()

	w.reloads.Add(1)
	w.logger.Info("Config reloaded", "path", w.path, "handlers", len(handlers))
	for _, h := range handlers {
		h(value)
	}
}
