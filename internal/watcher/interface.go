package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// BatchHandler receives the names of the video files that appeared in the
// watched directory during one settle window, sorted.
type BatchHandler func(ctx context.Context, names []string) error
