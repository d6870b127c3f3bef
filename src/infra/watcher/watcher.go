package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before it is reported.
const DefaultDebounce = time.Second

// Watcher monitors a folder for new files and emits one event per settled file
type Watcher struct {
	watcher   *fsnotify.Watcher
	watchPath string
	debounce  time.Duration

	timersMutex sync.Mutex
	timers      map[string]*time.Timer

	running   bool
	stopChan  chan struct{}
	eventChan chan<- FileEvent
}

// NewWatcher creates a new file system watcher
func NewWatcher(eventChan chan<- FileEvent, debounce time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:   watcher,
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
		eventChan: eventChan,
		stopChan:  make(chan struct{}),
	}, nil
}

// Start begins watching watchPath. Subfolders are not watched.
func (w *Watcher) Start(ctx context.Context, watchPath string) error {
	w.watchPath = watchPath
	slog.Info("Starting file watcher", "path", watchPath)

	if err := w.watcher.Add(watchPath); err != nil {
		return err
	}

	w.running = true
	go w.watchLoop(ctx)
	return nil
}

// Stop stops the file watcher
func (w *Watcher) Stop() {
	if !w.running {
		return
	}

	slog.Info("Stopping file watcher")
	w.running = false
	close(w.stopChan)

	w.timersMutex.Lock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
	w.timersMutex.Unlock()

	w.watcher.Close()
}

// watchLoop processes file system events
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)

		case <-w.stopChan:
			return

		case <-ctx.Done():
			return
		}
	}
}

// handleEvent restarts the quiet period of a created or written file
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if ignored(event.Name) {
		return
	}

	w.timersMutex.Lock()
	defer w.timersMutex.Unlock()

	if timer, ok := w.timers[event.Name]; ok {
		timer.Stop()
	}
	path := event.Name
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.timersMutex.Lock()
		delete(w.timers, path)
		w.timersMutex.Unlock()
		w.emit(path)
	})
}

// ignored skips hidden files and downloads still in progress
func ignored(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".part")
}

// emit sends the event if the file is still there and is a regular file
func (w *Watcher) emit(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	event := FileEvent{
		Path:      path,
		EventType: FileCreated,
		Timestamp: time.Now(),
	}

	select {
	case w.eventChan <- event:
		slog.Debug("Emitted file event", "path", event.Path)
	case <-w.stopChan:
	default:
		slog.Warn("Event channel full, dropping file event", "path", event.Path)
	}
}
