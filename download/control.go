package download

import (
	"context"
	"sync"
)

// control steers a running task. Pausing swaps in a channel
// that gate blocks on until resume closes it.
type control struct {
	cancel context.CancelFunc

	mu     sync.Mutex
	paused chan struct{}
}

func (c *control) pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused == nil {
		c.paused = make(chan struct{})
	}
}

func (c *control) resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused != nil {
		close(c.paused)
		c.paused = nil
	}
}

func (c *control) gate(ctx context.Context) error {
	c.mu.Lock()
	paused := c.paused
	c.mu.Unlock()

	if paused == nil {
		return ctx.Err()
	}

	select {
	case <-paused:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
