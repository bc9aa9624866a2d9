// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across providers.
package httputil

import (
	"context"
	"sync"
	"time"
)

// Cooldown enforces a minimum interval between calls, process-wide per
// instance. A caller arriving inside the interval is deferred until the
// cooldown elapses, never dropped. After a wait the condition is
// re-checked, so a caller that slept may be deferred again if another
// caller claimed the slot first (a self-throttling retry, not a queue).
type Cooldown struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewCooldown returns a Cooldown with the given minimum interval.
func NewCooldown(interval time.Duration) *Cooldown {
	return &Cooldown{interval: interval}
}

// Wait blocks until the cooldown allows a call, then claims the slot.
// It returns early with ctx.Err() if the context is cancelled while
// waiting.
func (c *Cooldown) Wait(ctx context.Context) error {
	for {
		c.mu.Lock()
		now := time.Now()
		remaining := c.interval - now.Sub(c.last)
		if remaining <= 0 {
			c.last = now
			c.mu.Unlock()
			return nil
		}
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(remaining):
		}
	}
}
