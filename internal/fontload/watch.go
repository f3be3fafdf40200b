package fontload

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher keeps the fonts of a directory in a registry up to date.
type Watcher struct {
	reg     *Registry
	dir     string
	watcher *fsnotify.Watcher
}

// Watch starts watching dir for font files being created, changed or removed.
// Events are processed by Run.
func (r *Registry) Watch(dir string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{reg: r, dir: filepath.Clean(dir), watcher: w}, nil
}

// Run processes file system events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			tracer().Errorf("font directory watcher: %v", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !IsFontFile(event.Name) {
		return
	}
	key := KeyFor(event.Name)
	switch {
	case event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename:
		if w.reg.removeSource(key, event.Name) {
			tracer().Infof("font %s removed", key)
		}
	case event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Write == fsnotify.Write:
		if err := w.reg.AddFile(key, event.Name); err != nil {
			// files are often written in several steps, later events will retry
			tracer().Debugf("font %s not (yet) loadable: %v", key, err)
			return
		}
		tracer().Infof("font %s (re)loaded", key)
	}
}
