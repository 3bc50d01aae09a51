// internal/app/store/accounts/local.go
package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/gardenlog/internal/app/store/localkv"
	"github.com/dalemusser/gardenlog/internal/domain/models"
	"go.uber.org/zap"
)

// demoUserKey holds the demo identity in the local store.
const demoUserKey = "demo_user"

// DemoIdentity is the synthetic gardener demo mode signs in as.
func DemoIdentity() models.Identity {
	now := time.Now().UTC()
	return models.Identity{
		UID:           "demo-user-123",
		DisplayName:   "Demo Gardener",
		Email:         "gardener@example.com",
		PhotoURL:      "https://api.dicebear.com/7.x/avataaars/svg?seed=Gardener",
		EmailVerified: true,
		CreatedAt:     now,
		LastLoginAt:   now,
	}
}

type localStore struct {
	kv  *localkv.Store
	log *zap.Logger
}

// NewLocal returns the demo-mode identity store.
func NewLocal(kv *localkv.Store, logger *zap.Logger) Store {
	return &localStore{kv: kv, log: logger}
}

func (s *localStore) Get(ctx context.Context, uid string) (*models.Identity, error) {
	var ident models.Identity
	found, err := s.kv.GetJSON(demoUserKey, &ident)
	if err != nil {
		return nil, err
	}
	if !found || ident.UID != uid {
		return nil, ErrNotFound
	}
	return &ident, nil
}

func (s *localStore) Upsert(ctx context.Context, ident models.Identity) error {
	err := s.kv.PutJSON(demoUserKey, ident)
	if errors.Is(err, localkv.ErrPartialSave) {
		s.log.Warn("demo identity saved without avatar image")
		return nil
	}
	return err
}

func (s *localStore) RecordLogin(ctx context.Context, uid string) error {
	ident, err := s.Get(ctx, uid)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	ident.LastLoginAt = time.Now().UTC()
	return s.Upsert(ctx, *ident)
}

// Revoke drops the demo identity. There is no stale-session condition
// locally, so no reauth check.
func (s *localStore) Revoke(ctx context.Context, uid string) error {
	return s.kv.Remove(demoUserKey)
}
