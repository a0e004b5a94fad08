package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/clipnamer/internal/logger"
	"github.com/nguyentantai21042004/clipnamer/internal/storage"
)

type implWatcher struct {
	dir     string
	handler BatchHandler
	logger  logger.Logger
	watcher *fsnotify.Watcher
	settle  time.Duration
	ignore  func(name string) bool
	pending map[string]struct{}
}

// Start monitors the directory until ctx is done. New or growing video files
// are collected and handed over as one batch once the directory has been
// quiet for the settle period. Batches are handled one at a time.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (settle: %s). Monitoring: %s", w.settle, w.dir)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			name := filepath.Base(event.Name)
			if !w.accept(name) {
				w.logger.Debug(ctx, "Ignoring file: %s", event.Name)
				continue
			}
			if _, seen := w.pending[name]; !seen {
				w.logger.Info(ctx, "New video detected: %s", event.Name)
			}
			w.pending[name] = struct{}{}

			// Every write pushes the batch back so partially copied files
			// are not picked up.
			if timer == nil {
				timer = time.NewTimer(w.settle)
			} else {
				timer.Reset(w.settle)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.flush(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) accept(name string) bool {
	if strings.HasPrefix(name, ".") || !storage.IsVideoFile(name) {
		return false
	}
	return w.ignore == nil || !w.ignore(name)
}

func (w *implWatcher) flush(ctx context.Context) {
	if len(w.pending) == 0 {
		return
	}
	names := make([]string, 0, len(w.pending))
	for name := range w.pending {
		names = append(names, name)
	}
	slices.Sort(names)
	clear(w.pending)

	w.logger.Info(ctx, "Handling %d new videos", len(names))
	if err := w.handler(ctx, names); err != nil {
		w.logger.Error(ctx, "Failed to handle batch %v: %v", names, err)
	}
}
