package assets

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/tubescene/internal/logger"
)

// Watcher reports writes to a fixed set of files in one directory.
type Watcher struct {
	dir     string
	names   map[string]bool
	watcher *fsnotify.Watcher
	changes chan string
}

// NewWatcher watches dir for changes to the named files.
func NewWatcher(dir string, names ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		dir:     dir,
		names:   make(map[string]bool, len(names)),
		watcher: fw,
		changes: make(chan string, 8),
	}
	for _, n := range names {
		w.names[n] = true
	}
	return w, nil
}

// Changes delivers the base name of each changed file. It is closed when Run
// returns.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Run forwards events until ctx is done. Changes that arrive while the
// channel is full are dropped; the next write reports the file again.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.changes)
	defer w.watcher.Close()

	log := logger.Named("assets")
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			if !w.names[name] {
				continue
			}
			select {
			case w.changes <- name:
				log.Debug("asset changed", zap.String("name", name), zap.String("op", event.Op.String()))
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.String("dir", w.dir), zap.Error(err))
		}
	}
}
