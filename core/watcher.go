package core

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-renders the UI when its override file changes and tells
// connected browsers to reload.
type Watcher struct {
	fs     *fsnotify.Watcher
	done   chan struct{}
	logger *zap.Logger
}

// WatchUI watches the directory holding file. Editors often replace a
// file instead of writing it in place, so events are filtered by name.
func WatchUI(file string, ui *UI, onReload func(), logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("resolve %s: %w", file, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", file, err)
	}

	w := &Watcher{fs: fw, done: make(chan struct{}), logger: logger}
	go w.loop(abs, ui, onReload)
	return w, nil
}

func (w *Watcher) loop(target string, ui *UI, onReload func()) {
	defer close(w.done)

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if err := ui.Reload(); err != nil {
				w.logger.Warn("ui reload failed", zap.String("file", target), zap.Error(err))
				continue
			}
			w.logger.Info("ui reloaded", zap.String("file", target))
			if onReload != nil {
				onReload()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}
