package viewmodel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateGetSet(t *testing.T) {
	s := NewState(1)
	assert.Equal(t, 1, s.Get())

	s.Set(2)
	assert.Equal(t, 2, s.Get())
}

func TestStateSubscribeYieldsCurrentValueFirst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewState("initial")
	ch := s.Subscribe(ctx)

	select {
	case v := <-ch:
		assert.Equal(t, "initial", v)
	case <-time.After(time.Second):
		t.Fatal("no initial value delivered")
	}
}

func TestStateConflatesWhenSubscriberLags(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewState(0)
	ch := s.Subscribe(ctx)

	// Let the initial value sit unconsumed, then write past it.
	s.Set(1)
	s.Set(2)
	s.Set(3)

	select {
	case v := <-ch:
		assert.Equal(t, 3, v, "lagging subscriber should see the latest value only")
	case <-time.After(time.Second):
		t.Fatal("no value delivered")
	}
}

func TestStateSubscribeClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := NewState(0)
	ch := s.Subscribe(ctx)
	<-ch

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond, "channel should close after cancel")

	// Writes after cancel must not panic or deliver.
	s.Set(42)
}

func TestStateUpdateAppliesUnderLock(t *testing.T) {
	s := NewState(10)
	s.Update(func(v int) int { return v + 5 })
	assert.Equal(t, 15, s.Get())
}
