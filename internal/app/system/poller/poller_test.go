package poller_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/gardenlog/internal/app/system/poller"
)

func TestPollerTicksUntilStopped(t *testing.T) {
	var ticks atomic.Int64
	p := poller.New(5*time.Millisecond, func(context.Context) { ticks.Add(1) })
	p.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for ticks.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("poller never ticked twice")
		case <-time.After(time.Millisecond):
		}
	}

	p.Stop()
	after := ticks.Load()

	// No tick may land after Stop returns, even across interval boundaries.
	time.Sleep(30 * time.Millisecond)
	if got := ticks.Load(); got != after {
		t.Errorf("tick count rose from %d to %d after Stop", after, got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	p := poller.New(time.Millisecond, func(context.Context) {})
	p.Start(context.Background())
	p.Stop()
	p.Stop() // must not panic or block
}

func TestStopWithoutStart(t *testing.T) {
	p := poller.New(time.Millisecond, func(context.Context) {})
	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked when Start was never called")
	}
}

func TestContextCancelEndsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ticks atomic.Int64
	p := poller.New(time.Millisecond, func(context.Context) { ticks.Add(1) })
	p.Start(ctx)
	cancel()

	// Stop still returns promptly after the context ended the loop.
	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked after context cancellation")
	}
}
