package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/clipnamer/internal/logger"
)

// DefaultSettle is how long a directory must stay quiet before a batch is
// handed to the handler.
const DefaultSettle = 2 * time.Second

type Options struct {
	Dir     string
	Handler BatchHandler
	Logger  logger.Logger
	// Settle is the quiet period after the last event of a batch.
	Settle time.Duration
	// Ignore drops names the caller produced itself, such as files it has
	// just renamed.
	Ignore func(name string) bool
}

// New creates a new Watcher on opts.Dir.
func New(opts Options) (Watcher, error) {
	if opts.Handler == nil {
		return nil, fmt.Errorf("watcher: handler is required")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(opts.Dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		dir:     opts.Dir,
		handler: opts.Handler,
		logger:  opts.Logger,
		watcher: watcher,
		settle:  opts.Settle,
		ignore:  opts.Ignore,
		pending: make(map[string]struct{}),
	}, nil
}
