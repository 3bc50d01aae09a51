// internal/app/store/plants/plantstore.go

// Package plants is the plant collection: one log of plants per user,
// backed by MongoDB in connected mode or the local store in demo mode. Both
// adapters honor the same contract, so callers never branch on backend mode.
package plants

import (
	"context"

	"github.com/dalemusser/gardenlog/internal/domain/models"
)

// Store is the plant collection contract.
//
//   - Add assigns a fresh id when the record lacks one and returns it.
//   - List returns plants in insertion order with timestamps as time.Time,
//     and repairs any legacy record missing an id before returning.
//   - Delete of an absent id is a no-op.
//   - DeleteAllForUser is idempotent; used by account teardown.
type Store interface {
	List(ctx context.Context, userID string) ([]models.Plant, error)
	Add(ctx context.Context, userID string, p models.Plant) (string, error)
	UpdateStatus(ctx context.Context, userID, plantID string, isPlanted bool) error
	Delete(ctx context.Context, userID, plantID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
