// internal/app/store/harvests/local.go
package harvests

import (
	"context"
	"errors"

	"github.com/dalemusser/gardenlog/internal/app/store/localkv"
	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type localStore struct {
	kv  *localkv.Store
	log *zap.Logger
}

// NewLocal returns the demo-mode harvest store. One JSON array per user
// under demo_harvests_<uid>.
func NewLocal(kv *localkv.Store, logger *zap.Logger) Store {
	return &localStore{kv: kv, log: logger}
}

func harvestsKey(userID string) string { return "demo_harvests_" + userID }

func (s *localStore) load(userID string) ([]models.HarvestLog, error) {
	var out []models.HarvestLog
	if _, err := s.kv.GetJSON(harvestsKey(userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *localStore) save(userID string, hs []models.HarvestLog) error {
	err := s.kv.PutJSON(harvestsKey(userID), hs)
	if errors.Is(err, localkv.ErrPartialSave) {
		s.log.Warn("harvests saved without embedded images", zap.String("user_id", userID))
		return nil
	}
	return err
}

func (s *localStore) List(ctx context.Context, userID string) ([]models.HarvestLog, error) {
	return s.load(userID)
}

func (s *localStore) Add(ctx context.Context, userID string, h models.HarvestLog) (string, error) {
	hs, err := s.load(userID)
	if err != nil {
		return "", err
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if err := s.save(userID, append(hs, h)); err != nil {
		return "", err
	}
	return h.ID, nil
}

func (s *localStore) Delete(ctx context.Context, userID, harvestID string) error {
	hs, err := s.load(userID)
	if err != nil {
		return err
	}
	kept := hs[:0]
	for _, h := range hs {
		if h.ID != harvestID {
			kept = append(kept, h)
		}
	}
	return s.save(userID, kept)
}

func (s *localStore) DeleteAllForUser(ctx context.Context, userID string) error {
	return s.kv.Remove(harvestsKey(userID))
}
