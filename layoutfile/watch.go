package layoutfile

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/GraybirdSoftware/offsetter/errors"
	"github.com/GraybirdSoftware/offsetter/logger"
)

// Watcher watches a set of layout files and invokes a callback, debounced,
// whenever any of them changes. Used by `offsetter gen --watch` to keep
// generated files current while layouts are being reverse-engineered.
type Watcher struct {
	paths   []string
	watcher *fsnotify.Watcher

	mu             sync.Mutex
	callbacks      []ChangeCallback
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	pending        map[string]bool
}

// ChangeCallback receives the paths that changed since the last invocation.
type ChangeCallback func(paths []string)

// NewWatcher creates a watcher over the given layout files.
func NewWatcher(paths []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating fsnotify watcher")
	}

	for _, path := range paths {
		if err := fsw.Add(path); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "watching layout file %s", path)
		}
	}

	return &Watcher{
		paths:          paths,
		watcher:        fsw,
		debouncePeriod: 500 * time.Millisecond, // editors write in bursts
		pending:        make(map[string]bool),
	}, nil
}

// OnChange registers a callback to run after a debounced change.
func (w *Watcher) OnChange(callback ChangeCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching in the background.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Regenerate on writes and creates; editors that replace the
			// file (vim, sed -i) show up as Create.
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				logger.Debugw("layout file changed",
					logger.FieldFile, event.Name,
					"op", event.Op.String())
				w.scheduleCallbacks(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("layout watcher error", logger.FieldError, err)
		}
	}
}

// scheduleCallbacks debounces rapid changes, accumulating the paths touched.
func (w *Watcher) scheduleCallbacks(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]bool)
	callbacks := make([]ChangeCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, callback := range callbacks {
		callback(changed)
	}
}
