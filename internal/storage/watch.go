package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"topicflow/internal/debug"
)

// DefaultWatchDelay is how long a file must stay quiet before it is reloaded.
const DefaultWatchDelay = 300 * time.Millisecond

// Watcher reloads a topic whenever the file at its path is written or
// replaced. The parent directory is watched so editors that save by rename
// are seen too.
type Watcher struct {
	path   string
	loader Loader
	delay  time.Duration
	fs     *fsnotify.Watcher

	onLoad  func(Topic)
	onError func(error)

	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher starts watching path. onLoad receives every topic that loads
// and validates; onError receives load failures and watcher errors. Both are
// called from the watcher's goroutine.
func NewWatcher(ctx context.Context, path string, loader Loader, onLoad func(Topic), onError func(error)) (*Watcher, error) {
	if loader == nil || onLoad == nil {
		return nil, storageError("watch topic", fmt.Errorf("loader and callback are required"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, storageError("watch topic", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, storageError("create file watcher", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, storageError("watch topic directory", err)
	}
	if onError == nil {
		onError = func(error) {}
	}
	w := &Watcher{
		path:    abs,
		loader:  loader,
		delay:   DefaultWatchDelay,
		fs:      fsw,
		onLoad:  onLoad,
		onError: onError,
		done:    make(chan struct{}),
	}
	go w.loop(ctx)
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.fs.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debug.With("path", w.path, "op", event.Op.String()).Debug("topic file changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.delay)
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload(ctx)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.onError(storageError("watch topic", err))
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	topic, err := w.loader.Load(ctx)
	if err != nil {
		debug.With("path", w.path, "error", err).Debug("topic reload failed")
		w.onError(err)
		return
	}
	w.onLoad(topic)
}
