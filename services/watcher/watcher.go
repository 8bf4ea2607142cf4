package watchsvc

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher calls reload whenever a JSON file of dir changes. Bursts of events are
// debounced into a single reload.
type Watcher struct {
	dir      string
	debounce time.Duration
	logger   core.Logger
	reload   func() error
}

func New(dir string, debounce time.Duration, logger core.Logger, reload func() error) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{dir: dir, debounce: debounce, logger: logger, reload: reload}
}

func isDatasetFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json")
}

// Run blocks until ctx is done. A failed reload is logged and the previous catalog stays live.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer func() { _ = fsw.Close() }()

	if err = fsw.Add(w.dir); err != nil {
		return errors.Wrapf(err, "watching %s", w.dir)
	}
	w.logger.Info("watching catalog dir " + w.dir)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !isDatasetFile(event.Name) {
				continue
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				if err := w.reload(); err != nil {
					w.logger.Error("reloading catalog: previous catalog kept", err)
					return
				}
				w.logger.Info("catalog reloaded")
			})
			mu.Unlock()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", err)
		}
	}
}
