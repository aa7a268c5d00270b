package dataset

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"mathtimeline/internal/eventbus"
)

// Watcher publishes a DatasetChangedEvent when the dataset file changes.
// It watches the parent directory so editors that save by rename are seen.
//
// Changes are only reported once a dataset has loaded. A failed first load
// stops the watcher for good.
type Watcher struct {
	watcher     *fsnotify.Watcher
	path        string
	debounce    time.Duration
	bus         eventbus.EventBus
	log         *zap.SugaredLogger
	loaded      atomic.Bool
	unsubscribe []func()
	done        chan struct{}
	once        sync.Once
}

// NewWatcher starts watching path
func NewWatcher(path string, bus eventbus.EventBus, log *zap.SugaredLogger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}

	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher:  w,
		path:     abs,
		debounce: 100 * time.Millisecond,
		bus:      bus,
		log:      log,
		done:     make(chan struct{}),
	}
	watcher.unsubscribe = []func(){
		bus.Subscribe(eventbus.EventDatasetLoaded, watcher.onLoaded),
		bus.Subscribe(eventbus.EventDatasetLoadFailed, watcher.onLoadFailed),
	}

	go watcher.loop()
	return watcher, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		for _, unsubscribe := range w.unsubscribe {
			unsubscribe()
		}
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) onLoaded(eventbus.DomainEvent) {
	w.loaded.Store(true)
}

func (w *Watcher) onLoadFailed(e eventbus.DomainEvent) {
	failed, ok := e.(eventbus.DatasetLoadFailedEvent)
	if !ok || failed.Reload || w.loaded.Load() {
		return
	}
	w.log.Infow("Initial load failed, no longer watching", "path", w.path)
	_ = w.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	name := filepath.Base(w.path)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case <-w.done:
					return
				default:
				}
				if !w.loaded.Load() {
					w.log.Debugw("Dataset file changed before first load, ignored", "path", w.path)
					return
				}
				w.log.Debugw("Dataset file changed", "path", w.path)
				w.bus.Publish(eventbus.DatasetChangedEvent{Path: w.path})
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnw("Dataset watcher error", "error", err)
			w.bus.Publish(eventbus.ErrorEvent{Message: "watching dataset failed", Err: err})
		}
	}
}
