package confloader

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yndnr/memkv-go/internal/telemetry/logger"
)

// DefaultDebounce is how long the watcher waits for a burst of events on a
// file to settle before notifying. A single save often produces a truncate
// and one or more writes.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to configuration files.
//
// The parent directory is watched rather than the file so that editors
// which save by rename are still seen.
type Watcher struct {
	fsw      *fsnotify.Watcher
	logger   logger.Logger
	debounce time.Duration

	mu        sync.RWMutex
	files     map[string]struct{}
	callbacks []func(string)

	done     chan struct{}
	stopOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the watcher.
func WithWatcherLogger(l logger.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = l
	}
}

// WithDebounce overrides DefaultDebounce. Zero notifies on every event.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// NewWatcher creates a watcher. Call Stop to release it.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		logger:   logger.Default(),
		debounce: DefaultDebounce,
		files:    make(map[string]struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds a file to watch.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(abs)
	if err := w.fsw.Add(dir); err != nil {
		w.logger.Error("failed to watch config directory", "path", dir, "error", err)
		return err
	}

	w.mu.Lock()
	w.files[abs] = struct{}{}
	w.mu.Unlock()

	w.logger.Debug("watching config file", "file", abs)
	return nil
}

// OnChange registers a callback that receives the path of a changed file.
// Callbacks run on the watcher goroutine.
func (w *Watcher) OnChange(callback func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start delivers change notifications until Stop is called.
func (w *Watcher) Start() {
	pending := make(map[string]struct{})
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, watched := w.watched(event.Name)
			if !watched {
				continue
			}
			w.logger.Debug("config file event", "file", name, "op", event.Op.String())

			if w.debounce == 0 {
				w.notifyCallbacks(name)
				continue
			}
			pending[name] = struct{}{}
			timer.Reset(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			for name := range pending {
				delete(pending, name)
				w.notifyCallbacks(name)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// StartAsync runs Start in a new goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) watched(name string) (string, bool) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", false
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.files[abs]
	return abs, ok
}

func (w *Watcher) notifyCallbacks(path string) {
	w.mu.RLock()
	cbs := w.callbacks
	w.mu.RUnlock()

	for _, cb := range cbs {
		cb(path)
	}
}
