package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	debounceDelay   = 50 * time.Millisecond
	eventBufferSize = 16
)

// ReloadEvent signals that the project file changed on disk.
type ReloadEvent struct {
	Path      string
	Timestamp time.Time
}

// ProjectWatcher watches a project file for external writes using
// fsnotify, so a running TUI can reload edits made by other tools. The
// parent directory is watched rather than the file itself, which
// survives the atomic rename the store uses for saves.
type ProjectWatcher struct {
	path    string
	watcher *fsnotify.Watcher

	mu          sync.Mutex
	subscribers []chan<- ReloadEvent
	debounce    *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewProjectWatcher starts watching the given project file's directory.
func NewProjectWatcher(path string) (*ProjectWatcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	pw := &ProjectWatcher{
		path:    path,
		watcher: watcher,
		ctx:     ctx,
		cancel:  cancel,
	}

	pw.wg.Add(1)
	go pw.run()

	return pw, nil
}

// Watch returns a channel that receives an event when the project file
// changes. The subscription ends when ctx is cancelled or the watcher is
// closed.
func (pw *ProjectWatcher) Watch(ctx context.Context) <-chan ReloadEvent {
	ch := make(chan ReloadEvent, eventBufferSize)

	pw.mu.Lock()
	pw.subscribers = append(pw.subscribers, ch)
	pw.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			pw.unsubscribe(ch)
		case <-pw.ctx.Done():
			// watcher closing; Close handles channel shutdown
		}
	}()

	return ch
}

// Close stops watching and closes all subscriber channels.
func (pw *ProjectWatcher) Close() error {
	pw.cancel()

	pw.mu.Lock()
	if pw.debounce != nil {
		pw.debounce.Stop()
	}
	for _, ch := range pw.subscribers {
		close(ch)
	}
	pw.subscribers = nil
	pw.mu.Unlock()

	err := pw.watcher.Close()
	pw.wg.Wait()
	return err
}

func (pw *ProjectWatcher) unsubscribe(ch chan<- ReloadEvent) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	for i, sub := range pw.subscribers {
		if sub == ch {
			pw.subscribers = append(pw.subscribers[:i], pw.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

func (pw *ProjectWatcher) run() {
	defer pw.wg.Done()

	for {
		select {
		case <-pw.ctx.Done():
			return
		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			pw.handleEvent(event)
		case _, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (pw *ProjectWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	// Only the project file itself; saves rename a .tmp over it, which
	// arrives as a Create/Rename of the target name.
	if filepath.Base(event.Name) != filepath.Base(pw.path) {
		return
	}

	pw.mu.Lock()
	if pw.debounce != nil {
		pw.debounce.Stop()
	}
	pw.debounce = time.AfterFunc(debounceDelay, pw.notify)
	pw.mu.Unlock()
}

func (pw *ProjectWatcher) notify() {
	ev := ReloadEvent{Path: pw.path, Timestamp: time.Now()}

	pw.mu.Lock()
	defer pw.mu.Unlock()

	for _, ch := range pw.subscribers {
		select {
		case ch <- ev:
		default:
			// subscriber is behind; drop rather than block
		}
	}
	pw.debounce = nil
}
