package library

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchEvent reports that the watched source file changed
type WatchEvent struct {
	Path string
	Op   string // fsnotify operation, e.g. "WRITE" or "CREATE"
}

// Watcher monitors a local library file for changes
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string

	Events chan WatchEvent
	Errors chan error
	done   chan struct{}
}

// NewWatcher creates a watcher for the file at path.
// The parent directory is watched so that editors replacing the file
// via rename are still noticed.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	clean := filepath.Clean(path)
	if err := fsw.Add(filepath.Dir(clean)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      clean,
		Events:    make(chan WatchEvent, 10),
		Errors:    make(chan error, 10),
		done:      make(chan struct{}),
	}, nil
}

// Path returns the watched file
func (w *Watcher) Path() string { return w.path }

// Start begins watching for file changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// watchLoop handles fsnotify events
func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				// Error channel full, drop
			}
		}
	}
}

// handleFSEvent forwards write/create events for the watched file
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	slog.Debug("library source changed", "path", w.path, "op", event.Op.String())

	select {
	case w.Events <- WatchEvent{Path: w.path, Op: event.Op.String()}:
	default:
		// A reload is already pending
	}
}
