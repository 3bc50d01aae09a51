// internal/app/store/plants/local.go
package plants

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/gardenlog/internal/app/store/localkv"
	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type localStore struct {
	kv  *localkv.Store
	log *zap.Logger
}

// NewLocal returns the demo-mode plant store over the local key/value
// medium. Each user's plants live as one JSON array under demo_plants_<uid>.
func NewLocal(kv *localkv.Store, logger *zap.Logger) Store {
	return &localStore{kv: kv, log: logger}
}

func plantsKey(userID string) string { return "demo_plants_" + userID }

func (s *localStore) load(userID string) ([]models.Plant, error) {
	var out []models.Plant
	if _, err := s.kv.GetJSON(plantsKey(userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// save writes the full set back, tolerating a partial (image-stripped) save:
// demo mode accepts that loss rather than failing the operation, but the
// condition is logged so it never disappears silently.
func (s *localStore) save(userID string, ps []models.Plant) error {
	err := s.kv.PutJSON(plantsKey(userID), ps)
	if errors.Is(err, localkv.ErrPartialSave) {
		s.log.Warn("plants saved without embedded images", zap.String("user_id", userID))
		return nil
	}
	return err
}

// List returns the user's plants, repairing legacy records that lack an id.
// The repaired set is written back before returning, so the repair happens
// exactly once per malformed record and the very next List sees the same
// ids.
func (s *localStore) List(ctx context.Context, userID string) ([]models.Plant, error) {
	ps, err := s.load(userID)
	if err != nil {
		return nil, err
	}

	repaired := false
	for i := range ps {
		if ps[i].ID == "" {
			ps[i].ID = uuid.NewString()
			repaired = true
		}
	}
	if repaired {
		s.log.Info("repaired plant records missing ids", zap.String("user_id", userID))
		if err := s.save(userID, ps); err != nil {
			return nil, fmt.Errorf("persist repaired plants: %w", err)
		}
	}
	return ps, nil
}

func (s *localStore) Add(ctx context.Context, userID string, p models.Plant) (string, error) {
	ps, err := s.load(userID)
	if err != nil {
		return "", err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.save(userID, append(ps, p)); err != nil {
		return "", err
	}
	return p.ID, nil
}

func (s *localStore) UpdateStatus(ctx context.Context, userID, plantID string, isPlanted bool) error {
	ps, err := s.load(userID)
	if err != nil {
		return err
	}
	for i := range ps {
		if ps[i].ID == plantID {
			ps[i].IsPlanted = isPlanted
		}
	}
	return s.save(userID, ps)
}

func (s *localStore) Delete(ctx context.Context, userID, plantID string) error {
	ps, err := s.load(userID)
	if err != nil {
		return err
	}
	kept := ps[:0]
	for _, p := range ps {
		if p.ID != plantID {
			kept = append(kept, p)
		}
	}
	return s.save(userID, kept)
}

func (s *localStore) DeleteAllForUser(ctx context.Context, userID string) error {
	return s.kv.Remove(plantsKey(userID))
}
