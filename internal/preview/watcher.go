package preview

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeType classifies a detected fixture change.
type ChangeType int

const (
	ChangePages ChangeType = iota
	ChangeConfig
	ChangeUsers
	ChangeOther
)

// Change represents a detected file change.
type Change struct {
	Path string
	Type ChangeType
}

// WatcherConfig configures the fixture watcher.
type WatcherConfig struct {
	// Paths are the files or directories to watch.
	Paths []string

	// Debounce is the quiet period before a change is reported.
	Debounce time.Duration
}

// Watcher monitors fixture files for changes using fsnotify. Editors
// typically replace files on save, so the watcher registers parent
// directories and filters events back down to the configured paths.
type Watcher struct {
	config   WatcherConfig
	onChange func(Change)

	mu      sync.Mutex
	running bool
	files   map[string]bool
	dirs    map[string]bool
	pending map[ChangeType]Change
	timer   *time.Timer
	stopCh  chan struct{}
}

// NewWatcher creates a fixture watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}

	return &Watcher{
		config:  config,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		pending: make(map[ChangeType]Change),
	}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start begins watching. It blocks until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	watchDirs := make(map[string]bool)
	for _, p := range w.config.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err == nil && info.IsDir() {
			w.mu.Lock()
			w.dirs[abs] = true
			w.mu.Unlock()
			watchDirs[abs] = true
			continue
		}
		// A file, possibly not created yet: watch its directory.
		w.mu.Lock()
		w.files[abs] = true
		w.mu.Unlock()
		watchDirs[filepath.Dir(abs)] = true
	}

	for dir := range watchDirs {
		if err := fsw.Add(dir); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if w.relevant(ev.Name) {
				w.record(Change{Path: ev.Name, Type: classifyChange(ev.Name)})
			}
		case _, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// relevant reports whether an event path maps to a configured path.
func (w *Watcher) relevant(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[abs] {
		return true
	}
	for dir := range w.dirs {
		if abs == dir || within(abs, dir) {
			return true
		}
	}
	return false
}

// record queues a change and (re)arms the debounce timer. Rapid saves of
// the same fixture collapse to one callback.
func (w *Watcher) record(c Change) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[c.Type] = c

	if w.timer != nil {
		w.timer.Reset(w.config.Debounce)
		return
	}
	w.timer = time.AfterFunc(w.config.Debounce, w.flush)
}

// flush reports pending changes, one per type.
func (w *Watcher) flush() {
	w.mu.Lock()
	callback := w.onChange
	changes := make([]Change, 0, len(w.pending))
	for _, c := range w.pending {
		changes = append(changes, c)
	}
	w.pending = make(map[ChangeType]Change)
	w.timer = nil
	w.mu.Unlock()

	if callback == nil {
		return
	}
	for _, c := range changes {
		callback(c)
	}
}

// within reports whether path is inside dir.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// classifyChange determines the change type from the file name.
func classifyChange(path string) ChangeType {
	base := filepath.Base(path)
	switch {
	case base == "colloquy.json":
		return ChangeConfig
	case base == "users.json":
		return ChangeUsers
	case filepath.Ext(base) == ".json":
		return ChangePages
	default:
		return ChangeOther
	}
}
