// internal/app/store/chat/local.go
package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dalemusser/gardenlog/internal/app/store/localkv"
	"github.com/dalemusser/gardenlog/internal/app/system/poller"
	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type localStore struct {
	kv       *localkv.Store
	interval time.Duration
	log      *zap.Logger
}

// NewLocal returns the demo-mode chat store. Each channel is one JSON array
// under demo_chat_<channel>; subscriptions re-read the key every interval.
func NewLocal(kv *localkv.Store, interval time.Duration, logger *zap.Logger) Store {
	return &localStore{kv: kv, interval: interval, log: logger}
}

func chatKey(channel string) string { return "demo_chat_" + channel }

// List returns the channel's messages, seeding a welcome message the first
// time a channel is read so demo mode never shows an empty room.
func (s *localStore) List(ctx context.Context, channel string) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	found, err := s.kv.GetJSON(chatKey(channel), &msgs)
	if err != nil {
		return nil, err
	}
	if !found {
		msgs = []models.ChatMessage{{
			ID:        "1",
			Channel:   channel,
			Text:      fmt.Sprintf("Welcome to the %s group! Any tips for aphids?", channel),
			UserID:    "bot",
			UserName:  "GardenBot",
			UserLevel: "Master Gardener",
			Timestamp: time.Now().Add(-24 * time.Hour),
		}}
		if err := s.saveMsgs(channel, msgs); err != nil {
			return nil, err
		}
	}
	return msgs, nil
}

func (s *localStore) saveMsgs(channel string, msgs []models.ChatMessage) error {
	err := s.kv.PutJSON(chatKey(channel), msgs)
	if errors.Is(err, localkv.ErrPartialSave) {
		s.log.Warn("chat history saved without embedded images", zap.String("channel", channel))
		return nil
	}
	return err
}

func (s *localStore) Send(ctx context.Context, channel string, msg models.ChatMessage) (string, error) {
	msgs, err := s.List(ctx, channel)
	if err != nil {
		return "", err
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.Channel = channel
	if err := s.saveMsgs(channel, append(msgs, msg)); err != nil {
		return "", err
	}
	return msg.ID, nil
}

// Subscribe delivers the current history synchronously, then polls the
// channel key, invoking cb with the full message slice on every tick. The
// cancel function stops the poll loop deterministically; no callback runs
// after it returns.
func (s *localStore) Subscribe(ctx context.Context, channel string, cb func([]models.ChatMessage)) (CancelFunc, error) {
	msgs, err := s.List(ctx, channel)
	if err != nil {
		return nil, err
	}
	cb(msgs)

	p := poller.New(s.interval, func(pollCtx context.Context) {
		msgs, err := s.List(pollCtx, channel)
		if err != nil {
			s.log.Error("chat poll failed", zap.String("channel", channel), zap.Error(err))
			return
		}
		cb(msgs)
	})
	p.Start(ctx)

	var once sync.Once
	return func() { once.Do(p.Stop) }, nil
}
