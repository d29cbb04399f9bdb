package loader

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadDebounce coalesces the burst of fsnotify events an editor or
// atomic rename produces into a single reload.
const reloadDebounce = 200 * time.Millisecond

// Watcher reloads a file-based playlist document when it changes and
// delivers the new document on Documents. A reload is a wholesale
// replacement: the engine resets its store, timers and hints for it.
type Watcher struct {
	loader  *Loader
	path    string
	log     *zap.Logger
	watcher *fsnotify.Watcher

	docs chan *Document
	done chan struct{}
}

// Watch starts watching a playlist document file. URL sources are not
// watchable; callers poll those on their own schedule if they care.
func (l *Loader) Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors and atomic writes replace the file,
	// which drops a watch registered on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		loader:  l,
		path:    path,
		log:     l.log,
		watcher: fsw,
		docs:    make(chan *Document, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Documents delivers reloaded documents. Only the latest pending
// document is kept.
func (w *Watcher) Documents() <-chan *Document {
	return w.docs
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("playlist watch error", zap.Error(err))

		case <-reload:
			doc, err := w.loader.Load(w.path)
			if err != nil {
				w.log.Warn("playlist reload failed", zap.Error(err))
				continue
			}
			// Keep only the newest document if the consumer is slow.
			select {
			case w.docs <- doc:
			default:
				select {
				case <-w.docs:
				default:
				}
				select {
				case w.docs <- doc:
				default:
				}
			}
		}
	}
}
