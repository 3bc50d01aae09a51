// internal/app/store/chat/chatstore.go

// Package chat stores channel messages and exposes the live-update
// subscription both backends share. Messages are append-only: channel
// members see everything, nobody edits or deletes.
//
// Subscribe has one contract in both modes: the callback receives the
// current message slice once up front, then again whenever the channel
// changes, until the returned cancel function is called. Connected mode
// feeds it from a Mongo change stream; demo mode re-reads the channel key on
// a polling interval. Cancel is idempotent, and no callback runs after it
// returns.
package chat

import (
	"context"

	"github.com/dalemusser/gardenlog/internal/domain/models"
)

// CancelFunc tears down a subscription. Call exactly once when the view goes
// away; extra calls are no-ops.
type CancelFunc func()

// Store is the chat collection contract.
type Store interface {
	List(ctx context.Context, channel string) ([]models.ChatMessage, error)
	Send(ctx context.Context, channel string, msg models.ChatMessage) (string, error)
	Subscribe(ctx context.Context, channel string, cb func([]models.ChatMessage)) (CancelFunc, error)
}
