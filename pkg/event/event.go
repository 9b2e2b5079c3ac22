// Package event is the in-process dispatcher for domain events such as
// order.placed and product.updated. Async delivery runs on a shared
// bounded pool so a storm of events cannot spawn unbounded goroutines.
package event

import (
	"sync"

	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/workerpool"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}

	poolOnce sync.Once
	pool     *workerpool.Pool
)

func asyncPool() *workerpool.Pool {
	poolOnce.Do(func() { pool = workerpool.New(16) })
	return pool
}

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners on the shared pool and
// returns immediately. Delivery falls back to synchronous when the pool is
// saturated, so no event is ever silently lost.
func FireAsync(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h := h
		if err := asyncPool().Submit(func() { h(payload) }); err != nil {
			logger.Warn("event: async pool saturated, delivering inline", "event", event)
			h(payload)
		}
	}
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}

func snapshot(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}
