// internal/app/system/identity/broker.go

// Package identity broadcasts auth-state changes to subscribers. It is the
// in-process stand-in for the remote backend's auth push channel, and demo
// mode uses the same contract: subscribe once, get the current state
// synchronously, then zero or more updates, and cancel exactly once.
//
// No library in our stack offers a tiny in-process broadcaster with a
// synchronous replay of the last value, so this is hand-rolled over sync.
package identity

import (
	"sync"

	"github.com/dalemusser/gardenlog/internal/domain/models"
)

// Broker fans identity changes out to subscribers. A nil identity means
// signed out.
type Broker struct {
	mu      sync.Mutex
	subs    map[int]func(*models.Identity)
	nextID  int
	current *models.Identity
	primed  bool
}

// NewBroker creates an empty broker with no current identity.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]func(*models.Identity))}
}

// Subscribe registers cb and returns its cancel function. If an identity
// state has ever been published (including nil for signed-out), cb is
// invoked synchronously with the current state before Subscribe returns.
// After cancel returns, cb is never invoked again.
func (b *Broker) Subscribe(cb func(*models.Identity)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = cb
	primed, current := b.primed, b.current
	b.mu.Unlock()

	if primed {
		cb(current)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish records ident as the current state and notifies every subscriber.
// Callbacks run synchronously on the publisher's goroutine, in arbitrary
// order.
func (b *Broker) Publish(ident *models.Identity) {
	b.mu.Lock()
	b.current = ident
	b.primed = true
	cbs := make([]func(*models.Identity), 0, len(b.subs))
	for _, cb := range b.subs {
		cbs = append(cbs, cb)
	}
	b.mu.Unlock()

	for _, cb := range cbs {
		cb(ident)
	}
}

// Current returns the last published identity (nil if signed out or nothing
// has been published yet).
func (b *Broker) Current() *models.Identity {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}
