package datasource

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of writes editors make on save.
const DefaultDebounce = 50 * time.Millisecond

// Watcher reports changes to individual source files.
//
// fsnotify loses track of a file when editors replace it by rename, so the
// parent directory is watched and events are filtered by file name.
type Watcher struct {
	fw       *fsnotify.Watcher
	done     chan struct{}
	debounce time.Duration

	mu      sync.Mutex
	stopped bool
	files   map[string]func(path string)
	dirs    map[string]bool
	timers  map[string]*time.Timer
}

// NewWatcher creates a watcher. Call Watch for each file, then Stop.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fw:       fw,
		done:     make(chan struct{}),
		debounce: DefaultDebounce,
		files:    make(map[string]func(string)),
		dirs:     make(map[string]bool),
		timers:   make(map[string]*time.Timer),
	}
	go w.loop()
	return w, nil
}

// Watch calls onChange with the absolute path whenever the file is written,
// created, removed or renamed. Calls for one file are debounced.
func (w *Watcher) Watch(path string, onChange func(path string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	if !w.dirs[dir] {
		if err := w.fw.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	w.files[abs] = onChange
	return nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.schedule(filepath.Clean(event.Name))

		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// fsnotify recovers on its own

		case <-w.done:
			return
		}
	}
}

// schedule fires the file's callback once events stop arriving for the
// debounce interval.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	onChange, ok := w.files[path]
	if !ok {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		stopped := w.stopped
		delete(w.timers, path)
		w.mu.Unlock()
		if !stopped {
			onChange(path)
		}
	})
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	for _, t := range w.timers {
		t.Stop()
	}
	close(w.done)
	return w.fw.Close()
}

// ChangedMsg carries a freshly reloaded source.
type ChangedMsg struct {
	Path   string
	Values []string
}

// Reloads watches each path and delivers its reloaded contents on the
// returned channel. The channel is never closed; stop the watcher instead.
func (w *Watcher) Reloads(paths ...string) (<-chan ChangedMsg, error) {
	out := make(chan ChangedMsg, len(paths)+1)
	for _, p := range paths {
		if p == "" {
			continue
		}
		err := w.Watch(p, func(abs string) {
			msg := ChangedMsg{Path: abs, Values: LoadOrEmpty(context.Background(), abs)}
			select {
			case out <- msg:
			case <-w.done:
			}
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WatchCmd waits for the next reload. Re-issue it after each ChangedMsg.
func WatchCmd(ch <-chan ChangedMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		return <-ch
	}
}
