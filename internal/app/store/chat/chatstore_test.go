package chat_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/gardenlog/internal/app/store/chat"
	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/dalemusser/gardenlog/internal/testutil"
)

const pollInterval = 10 * time.Millisecond

func newStore(t *testing.T) chat.Store {
	t.Helper()
	return chat.NewLocal(testutil.NewLocalStore(t), pollInterval, testutil.Logger())
}

func TestFirstListSeedsWelcomeMessage(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	msgs, err := store.List(ctx, "veg_growers")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("List returned %d messages, want the seeded welcome", len(msgs))
	}
	if msgs[0].UserName != "GardenBot" || msgs[0].UserLevel != "Master Gardener" {
		t.Errorf("unexpected seed message: %+v", msgs[0])
	}

	// The seed is persisted, not regenerated: the id stays stable.
	again, _ := store.List(ctx, "veg_growers")
	if len(again) != 1 || again[0].ID != msgs[0].ID {
		t.Errorf("welcome message reseeded: %+v", again)
	}
}

func TestSendAppendsInOrder(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	sender := models.Identity{UID: "u1", DisplayName: "Demo Gardener"}
	for _, text := range []string{"first", "second"} {
		_, err := store.Send(ctx, "veg_growers", models.ChatMessage{
			Text:      text,
			UserID:    sender.UID,
			UserName:  sender.DisplayName,
			UserLevel: "Apprentice",
			Timestamp: time.Now(),
		})
		if err != nil {
			t.Fatalf("Send %q failed: %v", text, err)
		}
	}

	msgs, _ := store.List(ctx, "veg_growers")
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want seed + 2", len(msgs))
	}
	if msgs[1].Text != "first" || msgs[2].Text != "second" {
		t.Errorf("messages out of order: %+v", msgs)
	}
	if msgs[2].Channel != "veg_growers" {
		t.Errorf("channel not stamped on message: %+v", msgs[2])
	}
}

func TestSubscribeDeliversSnapshotThenUpdates(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	var mu sync.Mutex
	var deliveries [][]models.ChatMessage
	cancel, err := store.Subscribe(ctx, "veg_growers", func(msgs []models.ChatMessage) {
		mu.Lock()
		deliveries = append(deliveries, msgs)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer cancel()

	// Synchronous snapshot with the seeded welcome message.
	mu.Lock()
	if len(deliveries) != 1 || len(deliveries[0]) != 1 {
		mu.Unlock()
		t.Fatalf("expected one synchronous delivery of the seed, got %v", deliveries)
	}
	mu.Unlock()

	if _, err := store.Send(ctx, "veg_growers", models.ChatMessage{Text: "anyone grown okra?", UserID: "u1"}); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		last := deliveries[len(deliveries)-1]
		mu.Unlock()
		if len(last) == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("poll never delivered the new message")
		case <-time.After(pollInterval):
		}
	}
}

func TestCancelStopsCallbacks(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	var mu sync.Mutex
	calls := 0
	cancel, err := store.Subscribe(ctx, "veg_growers", func([]models.ChatMessage) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	mu.Lock()
	if calls != 1 {
		mu.Unlock()
		t.Fatalf("expected exactly the snapshot callback, got %d", calls)
	}
	mu.Unlock()

	cancel()
	cancel() // exactly-once contract: extra cancels are harmless

	mu.Lock()
	after := calls
	mu.Unlock()

	// Wait past several polling intervals: no further callback may fire.
	time.Sleep(5 * pollInterval)
	mu.Lock()
	if calls != after {
		t.Errorf("callback fired after cancel (%d -> %d)", after, calls)
	}
	mu.Unlock()
}
