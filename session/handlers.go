// File: session/handlers.go
// Package session message handler registry.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package session

import (
	"sync"

	"github.com/momentics/wsession/api"
)

// MessageHandlerCollection is a thread-safe set of message handlers.
// Handlers are compared by interface identity, so register pointer values;
// duplicate registrations are ignored.
type MessageHandlerCollection struct {
	mu       sync.RWMutex
	handlers []api.Handler
}

// Add registers h. Nil handlers and duplicates are ignored.
func (c *MessageHandlerCollection) Add(h api.Handler) {
	if h == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.handlers {
		if existing == h {
			return
		}
	}
	c.handlers = append(c.handlers, h)
}

// Remove unregisters h if present.
func (c *MessageHandlerCollection) Remove(h api.Handler) {
	if h == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.handlers {
		if existing == h {
			c.handlers = append(c.handlers[:i], c.handlers[i+1:]...)
			return
		}
	}
}

// Handlers returns a snapshot of the registered handlers.
func (c *MessageHandlerCollection) Handlers() []api.Handler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]api.Handler, len(c.handlers))
	copy(out, c.handlers)
	return out
}

// Len returns the number of registered handlers.
func (c *MessageHandlerCollection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handlers)
}
