package draft

import (
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the drafts directory so externally added, edited, or
// removed draft files show up in List without a restart. Events are debounced
// because editors typically emit bursts of writes for one save.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	onChange func()
	debounce time.Duration

	mu      sync.Mutex
	pending *time.Timer
	closed  bool
	done    chan struct{}
}

// NewWatcher starts watching the store's drafts directory. onChange is called
// (from the watcher goroutine) after the registry has been refreshed; pass a
// function that posts into the UI event loop.
func NewWatcher(store *Store, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(store.store.DraftsDir()); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		store:    store,
		watcher:  fsw,
		onChange: onChange,
		debounce: 200 * time.Millisecond,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				w.schedule()
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal; the next Refresh resyncs.
		}
	}
}

// relevant filters out temp files from our own atomic writes.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	name := ev.Name
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if strings.HasPrefix(name, ".tmp-") || strings.HasPrefix(name, ".") {
		return false
	}
	return ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) ||
		ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, func() {
		if err := w.store.Refresh(); err != nil {
			return
		}
		if w.onChange != nil {
			w.onChange()
		}
	})
}
