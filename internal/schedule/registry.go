// Package schedule tracks one-shot delayed callbacks so they can be cancelled
// together when their owner is torn down.
package schedule

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ygelfand/vidstrip/internal/config"
)

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

type Registry struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	timers  map[Handle]clockwork.Timer
	next    Handle
	closed  bool
	running sync.WaitGroup
}

func NewRegistry(clock clockwork.Clock) *Registry {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Registry{
		clock:  clock,
		timers: make(map[Handle]clockwork.Timer),
	}
}

// Clock returns the clock timers are created on
func (r *Registry) Clock() clockwork.Clock {
	return r.clock
}

// After runs fn once d has elapsed unless cancelled first.
// It returns the zero Handle when the registry is already closed.
func (r *Registry) After(d time.Duration, fn func()) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		slog.Debug("Registry: rejecting timer on closed registry", "delay", d)
		return 0
	}

	r.next++
	h := r.next
	r.timers[h] = r.clock.AfterFunc(d, func() {
		r.mu.Lock()
		if _, ok := r.timers[h]; !ok || r.closed {
			r.mu.Unlock()
			return
		}
		delete(r.timers, h)
		r.running.Add(1)
		r.mu.Unlock()

		defer r.running.Done()
		slog.Log(context.Background(), config.LevelTrace, "Registry: firing timer", "handle", h)
		fn()
	})
	return h
}

// Cancel stops a pending callback. It reports whether the callback was still pending.
func (r *Registry) Cancel(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.timers[h]
	if !ok {
		return false
	}
	t.Stop()
	delete(r.timers, h)
	return true
}

// Pending returns the number of callbacks that have not fired yet
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Close cancels every pending callback, waits for callbacks already running and
// rejects new ones. It must not be called from inside a callback.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	for h, t := range r.timers {
		t.Stop()
		delete(r.timers, h)
	}
	r.mu.Unlock()

	r.running.Wait()
	slog.Debug("Registry: closed")
}
