// internal/app/store/harvests/harveststore.go

// Package harvests is the harvest-log collection. Entries are immutable
// after creation: list, add, delete, nothing else.
package harvests

import (
	"context"

	"github.com/dalemusser/gardenlog/internal/domain/models"
)

// Store is the harvest collection contract. Same shape in both backend
// modes; Delete of an absent id is a no-op.
type Store interface {
	List(ctx context.Context, userID string) ([]models.HarvestLog, error)
	Add(ctx context.Context, userID string, h models.HarvestLog) (string, error)
	Delete(ctx context.Context, userID, harvestID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
