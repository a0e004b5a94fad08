package processor

import "context"

// semaphore bounds how many videos are downloaded and transcribed at once.
type semaphore chan struct{}

func newSemaphore(capacity int) semaphore {
	return make(semaphore, max(capacity, 1))
}

// acquire blocks until a slot is free or ctx is done.
func (s semaphore) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s semaphore) release() {
	<-s
}
