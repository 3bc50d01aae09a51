// internal/app/store/plans/planstore.go

// Package plans stores saved planting plans. Plans are written once on an
// explicit save, listed, and only ever removed by account teardown.
package plans

import (
	"context"

	"github.com/dalemusser/gardenlog/internal/domain/models"
)

// Store is the saved-plan collection contract.
type Store interface {
	List(ctx context.Context, userID string) ([]models.SavedPlan, error)
	Save(ctx context.Context, userID, name string, plan models.PlantingPlan) (string, error)
	DeleteAllForUser(ctx context.Context, userID string) error
}
