package identity_test

import (
	"testing"

	"github.com/dalemusser/gardenlog/internal/app/system/identity"
	"github.com/dalemusser/gardenlog/internal/domain/models"
)

func TestSubscribeReplaysCurrentState(t *testing.T) {
	b := identity.NewBroker()

	// Nothing published yet: no synchronous delivery.
	var calls []*models.Identity
	cancel := b.Subscribe(func(i *models.Identity) { calls = append(calls, i) })
	if len(calls) != 0 {
		t.Fatalf("unprimed broker delivered %d calls", len(calls))
	}
	cancel()

	b.Publish(&models.Identity{UID: "u1", DisplayName: "Demo Gardener"})

	calls = nil
	cancel = b.Subscribe(func(i *models.Identity) { calls = append(calls, i) })
	defer cancel()
	if len(calls) != 1 || calls[0] == nil || calls[0].UID != "u1" {
		t.Fatalf("expected synchronous replay of current identity, got %v", calls)
	}
}

func TestPublishNotifiesSubscribers(t *testing.T) {
	b := identity.NewBroker()

	var got *models.Identity
	cancel := b.Subscribe(func(i *models.Identity) { got = i })
	defer cancel()

	b.Publish(&models.Identity{UID: "u2"})
	if got == nil || got.UID != "u2" {
		t.Fatalf("subscriber not notified, got %v", got)
	}

	// nil means signed out and is still delivered.
	b.Publish(nil)
	if got != nil {
		t.Error("signed-out state not delivered")
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	b := identity.NewBroker()

	calls := 0
	cancel := b.Subscribe(func(*models.Identity) { calls++ })
	b.Publish(&models.Identity{UID: "u3"})
	if calls != 1 {
		t.Fatalf("expected 1 call before cancel, got %d", calls)
	}

	cancel()
	cancel() // second cancel is a no-op
	b.Publish(&models.Identity{UID: "u4"})
	if calls != 1 {
		t.Errorf("callback ran after cancel (%d calls)", calls)
	}
}
