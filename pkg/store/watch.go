package store

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/resource"
)

// Subscription is a live view over a query: one Loading, then a fresh
// Success(snapshot) every time the underlying collection changes, until
// cancelled. The channel is closed on teardown and nothing is emitted after
// Cancel returns the subscription's goroutine — callers can range over C.
type Subscription[T any] struct {
	C      <-chan resource.Resource[T]
	cancel context.CancelFunc
}

// Cancel releases the underlying change stream. Safe to call repeatedly.
func (s *Subscription[T]) Cancel() {
	s.cancel()
}

// NewSubscription adapts an existing channel into a Subscription, for feeds
// not backed by a change stream. A nil cancel becomes a no-op.
func NewSubscription[T any](c <-chan resource.Resource[T], cancel context.CancelFunc) *Subscription[T] {
	if cancel == nil {
		cancel = func() {}
	}
	return &Subscription[T]{C: c, cancel: cancel}
}

// WatchSnapshots opens a change stream on coll and re-runs fetch after every
// change event, emitting the result as a Resource. The initial snapshot is
// emitted right after Loading so subscribers always have data without
// waiting for the first write.
//
// Backpressure: emissions block until the consumer reads or the scope ends,
// so a slow consumer delays snapshots but never loses the final state.
func WatchSnapshots[T any](ctx context.Context, coll *mongo.Collection, fetch func(context.Context) (T, error)) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan resource.Resource[T], 1)

	emit := func(r resource.Resource[T]) bool {
		select {
		case ch <- r:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		metrics.WatchSubscriptions.Inc()
		defer metrics.WatchSubscriptions.Dec()
		defer close(ch)

		if !emit(resource.Loading[T]()) {
			return
		}

		snapshot := func() bool {
			v, err := fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return false
				}
				return emit(resource.Errf[T](err))
			}
			return emit(resource.Success(v))
		}

		if !snapshot() {
			return
		}

		cs, err := coll.Watch(ctx, mongo.Pipeline{})
		if err != nil {
			if ctx.Err() == nil {
				emit(resource.Errf[T](err))
			}
			return
		}
		defer cs.Close(context.Background())

		for cs.Next(ctx) {
			if !snapshot() {
				return
			}
		}

		if err := cs.Err(); err != nil && ctx.Err() == nil {
			emit(resource.Errf[T](err))
		}
	}()

	return &Subscription[T]{C: ch, cancel: cancel}
}
