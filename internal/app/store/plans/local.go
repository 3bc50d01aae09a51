// internal/app/store/plans/local.go
package plans

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/gardenlog/internal/app/store/localkv"
	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type localStore struct {
	kv  *localkv.Store
	log *zap.Logger
}

// NewLocal returns the demo-mode saved-plan store. One JSON array per user
// under demo_plans_<uid>.
func NewLocal(kv *localkv.Store, logger *zap.Logger) Store {
	return &localStore{kv: kv, log: logger}
}

func plansKey(userID string) string { return "demo_plans_" + userID }

func (s *localStore) List(ctx context.Context, userID string) ([]models.SavedPlan, error) {
	var out []models.SavedPlan
	if _, err := s.kv.GetJSON(plansKey(userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *localStore) Save(ctx context.Context, userID, name string, plan models.PlantingPlan) (string, error) {
	existing, err := s.List(ctx, userID)
	if err != nil {
		return "", err
	}
	sp := models.SavedPlan{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Data:      plan,
		CreatedAt: time.Now().UTC(),
	}
	err = s.kv.PutJSON(plansKey(userID), append(existing, sp))
	if errors.Is(err, localkv.ErrPartialSave) {
		s.log.Warn("plan saved without embedded images", zap.String("user_id", userID))
		err = nil
	}
	if err != nil {
		return "", err
	}
	return sp.ID, nil
}

func (s *localStore) DeleteAllForUser(ctx context.Context, userID string) error {
	return s.kv.Remove(plansKey(userID))
}
