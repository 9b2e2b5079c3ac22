// Package viewmodel holds the presentation state machines that sit between
// transport handlers and the repositories. Each view-model owns one or more
// State holders; handlers read them synchronously or subscribe for pushes
// over SSE and WebSocket.
//
// Usage:
//
//	vm := viewmodel.NewProductViewModel(repo)
//	vm.Load(ctx)
//	sub := vm.Products.Subscribe(ctx)
//	for s := range sub {
//	    render(s)
//	}
package viewmodel

import (
	"context"
	"sync"
)

// State is a conflating observable value holder. Writers never block:
// a subscriber that lags sees the latest value, not every intermediate one.
type State[T any] struct {
	mu    sync.RWMutex
	value T
	subs  map[chan T]struct{}
}

func NewState[T any](initial T) *State[T] {
	return &State[T]{value: initial, subs: make(map[chan T]struct{})}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers. A subscriber whose
// buffer is full has its stale pending value replaced by this one.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	for ch := range s.subs {
		select {
		case ch <- v:
		default:
			// Drop the unconsumed value and replace it.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
	s.mu.Unlock()
}

// Update applies f to the current value under the lock and notifies
// subscribers with the result.
func (s *State[T]) Update(f func(T) T) {
	s.mu.Lock()
	s.value = f(s.value)
	v := s.value
	for ch := range s.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
	s.mu.Unlock()
}

// Subscribe returns a channel that immediately yields the current value and
// then the latest value after each Set. The channel closes when ctx ends.
func (s *State[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	s.mu.Lock()
	ch <- s.value
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
		close(ch)
	}()

	return ch
}
