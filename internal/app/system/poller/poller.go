// internal/app/system/poller/poller.go

// Package poller provides a cancellable repeating task. Local-mode chat
// subscriptions poll their channel key with one of these; anything else that
// needs to emulate a push channel by re-reading a resource shares the same
// lifecycle: Start once, Stop exactly once (extra Stops are no-ops), and no
// ticks are delivered after Stop returns.
package poller

import (
	"context"
	"sync"
	"time"
)

// Poller runs fn every interval until stopped. fn runs on a single
// goroutine; a slow fn delays the next tick rather than overlapping it.
type Poller struct {
	interval time.Duration
	fn       func(context.Context)

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// New creates a Poller. fn is not called until Start.
func New(interval time.Duration, fn func(context.Context)) *Poller {
	return &Poller{
		interval: interval,
		fn:       fn,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the polling loop. The loop also ends if ctx is cancelled.
// A second Start is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.fn(ctx)
			}
		}
	}()
}

// Stop ends the loop and waits for it to exit, so no tick callback runs
// after Stop returns. Safe to call more than once and before Start has
// ticked.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if started {
		<-p.done
	}
}
