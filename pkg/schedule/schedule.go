// Package schedule runs recurring maintenance tasks, like sweeping idle
// guest carts.
//
//	schedule.Every(10).Minutes().Name("carts.sweep").Run(func() { registry.Sweep() })
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/shashiranjanraj/vastra/pkg/logger"
)

// Task is the function signature for a scheduled task.
type Task func()

type entry struct {
	id        string
	interval  time.Duration
	task      Task
	lastRun   time.Time
	running   bool
	noOverlap bool
	mu        sync.Mutex
}

// Schedule is a fluent builder for a single entry before it is registered.
type Schedule struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// EveryMinute schedules the task to run every 60 seconds.
func EveryMinute() *Schedule { return Every(1).Minutes() }

// Every starts a fluent builder with n units.
func Every(n int) *freqBuilder { return &freqBuilder{n: n} }

// Hourly schedules the task to run every hour.
func Hourly() *Schedule { return Every(1).Hours() }

// Daily schedules the task to run every 24 hours.
func Daily() *Schedule { return Every(24).Hours() }

type freqBuilder struct{ n int }

func (f *freqBuilder) Seconds() *Schedule {
	return &Schedule{e: &entry{interval: time.Duration(f.n) * time.Second}}
}
func (f *freqBuilder) Minutes() *Schedule {
	return &Schedule{e: &entry{interval: time.Duration(f.n) * time.Minute}}
}
func (f *freqBuilder) Hours() *Schedule {
	return &Schedule{e: &entry{interval: time.Duration(f.n) * time.Hour}}
}

// WithoutOverlapping prevents a new run while the previous one is still
// executing.
func (s *Schedule) WithoutOverlapping() *Schedule {
	s.e.noOverlap = true
	return s
}

// Name gives the entry an identifier for logging.
func (s *Schedule) Name(id string) *Schedule {
	s.e.id = id
	return s
}

// Run registers the task. Call Start once at boot to begin dispatching.
func (s *Schedule) Run(fn Task) {
	s.e.task = fn
	regMu.Lock()
	entries = append(entries, s.e)
	regMu.Unlock()
}

// Flush drops every registered entry (useful in tests).
func Flush() {
	regMu.Lock()
	entries = nil
	regMu.Unlock()
}

// Start dispatches due tasks once a second until ctx is cancelled.
// Call it in its own goroutine, or let it block in a worker process.
func Start(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	logger.Info("schedule: started")
	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: stopped")
			return
		case now := <-ticker.C:
			dispatchDue(now)
		}
	}
}

func dispatchDue(now time.Time) {
	regMu.Lock()
	due := make([]*entry, 0, len(entries))
	for _, e := range entries {
		if now.Sub(e.lastRun) >= e.interval {
			due = append(due, e)
		}
	}
	regMu.Unlock()

	for _, e := range due {
		e.mu.Lock()
		if e.noOverlap && e.running {
			e.mu.Unlock()
			continue
		}
		e.running = true
		e.lastRun = now
		e.mu.Unlock()

		go func(e *entry) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("schedule: task panicked", "task", e.id, "error", r)
				}
				e.mu.Lock()
				e.running = false
				e.mu.Unlock()
			}()
			e.task()
		}(e)
	}
}
