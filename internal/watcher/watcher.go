package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// EventType represents the type of file change event
type EventType int

const (
	// SlotChanged means a persisted roster file was rewritten
	SlotChanged EventType = iota
)

// Event represents a file change event
type Event struct {
	Type EventType
	Path string
}

// Watcher watches the files backing a roster slot
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Event
	Errors  chan error
	done    chan struct{}

	mu      sync.Mutex
	running bool
	slots   map[string]string // base name -> watched path
}

// New creates a new file watcher
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher: fsWatcher,
		Events:  make(chan Event, 100),
		Errors:  make(chan error, 10),
		done:    make(chan struct{}),
		slots:   make(map[string]string),
	}, nil
}

// WatchSlot watches path for rewrites. The parent directory is watched so
// that atomic replace-by-rename is seen; SQLite journal files next to path
// count as the same slot.
func (w *Watcher) WatchSlot(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("slot directory does not exist: %s", dir)
	}

	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch slot directory: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	base := filepath.Base(path)
	for _, name := range []string{base, base + "-wal", base + "-journal"} {
		w.slots[name] = path
	}
	return nil
}

// Start begins watching for file changes
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.eventLoop()
}

// eventLoop processes file system events
func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Replace-by-rename shows up as Create on the target
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			e := w.classifyEvent(event.Name)
			if e != nil {
				// Non-blocking send
				select {
				case w.Events <- *e:
				default:
					// Channel full; the pending event already triggers a reload
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		}
	}
}

// classifyEvent maps a changed file to its slot, ignoring temp and lock files
func (w *Watcher) classifyEvent(path string) *Event {
	w.mu.Lock()
	slot, ok := w.slots[filepath.Base(path)]
	w.mu.Unlock()
	if !ok {
		return nil
	}
	return &Event{Type: SlotChanged, Path: slot}
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return w.watcher.Close()
	}

	close(w.done)
	w.running = false
	return w.watcher.Close()
}

// Close is an alias for Stop
func (w *Watcher) Close() error {
	return w.Stop()
}
