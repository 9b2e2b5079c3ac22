package viewmodel

import (
	"sync"
	"time"

	"github.com/shashiranjanraj/vastra/pkg/logger"
)

// CartRegistry hands out one CartViewModel per session id. Carts are
// in-memory only; the sweeper drops carts idle past the TTL so abandoned
// sessions do not pile up.
type CartRegistry struct {
	mu      sync.Mutex
	carts   map[string]*cartEntry
	ttl     time.Duration
	nowFunc func() time.Time
}

type cartEntry struct {
	vm       *CartViewModel
	lastSeen time.Time
}

func NewCartRegistry(ttl time.Duration) *CartRegistry {
	return &CartRegistry{
		carts:   make(map[string]*cartEntry),
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

// Get returns the session's cart, creating it on first use, and marks the
// session as active.
func (r *CartRegistry) Get(sessionID string) *CartViewModel {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.carts[sessionID]
	if !ok {
		e = &cartEntry{vm: NewCartViewModel()}
		r.carts[sessionID] = e
	}
	e.lastSeen = r.nowFunc()
	return e.vm
}

// Drop removes a session's cart, typically after checkout.
func (r *CartRegistry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.carts, sessionID)
	r.mu.Unlock()
}

// Sweep removes carts idle past the TTL and returns how many were dropped.
func (r *CartRegistry) Sweep() int {
	cutoff := r.nowFunc().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	var dropped int
	for id, e := range r.carts {
		if e.lastSeen.Before(cutoff) {
			delete(r.carts, id)
			dropped++
		}
	}
	if dropped > 0 {
		logger.Debug("carts: swept idle sessions", "dropped", dropped)
	}
	return dropped
}

// Len reports the number of live carts.
func (r *CartRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}
