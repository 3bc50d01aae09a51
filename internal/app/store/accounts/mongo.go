// internal/app/store/accounts/mongo.go
package accounts

import (
	"context"
	"time"

	"github.com/dalemusser/gardenlog/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoStore struct {
	c            *mongo.Collection
	reauthWindow time.Duration
}

// NewMongo returns the connected-mode identity store. reauthWindow bounds
// how stale a login may be before Revoke demands a fresh sign-in.
func NewMongo(db *mongo.Database, reauthWindow time.Duration) Store {
	return &mongoStore{c: db.Collection("identities"), reauthWindow: reauthWindow}
}

func (s *mongoStore) Get(ctx context.Context, uid string) (*models.Identity, error) {
	var ident models.Identity
	err := s.c.FindOne(ctx, bson.M{"uid": uid}).Decode(&ident)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

func (s *mongoStore) Upsert(ctx context.Context, ident models.Identity) error {
	now := time.Now().UTC()
	if ident.LastLoginAt.IsZero() {
		ident.LastLoginAt = now
	}
	_, err := s.c.UpdateOne(ctx,
		bson.M{"uid": ident.UID},
		bson.M{
			"$set": bson.M{
				"display_name":   ident.DisplayName,
				"email":          ident.Email,
				"photo_url":      ident.PhotoURL,
				"email_verified": ident.EmailVerified,
				"last_login_at":  ident.LastLoginAt,
			},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true))
	return err
}

func (s *mongoStore) RecordLogin(ctx context.Context, uid string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"uid": uid},
		bson.M{"$set": bson.M{"last_login_at": time.Now().UTC()}})
	return err
}

// Revoke deletes the identity document, refusing with ErrReauthRequired
// when the last sign-in is older than the reauth window. Revoking an absent
// identity is a no-op (the cascade may be re-run after a partial failure).
func (s *mongoStore) Revoke(ctx context.Context, uid string) error {
	ident, err := s.Get(ctx, uid)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if s.reauthWindow > 0 && time.Since(ident.LastLoginAt) > s.reauthWindow {
		return ErrReauthRequired
	}
	_, err = s.c.DeleteOne(ctx, bson.M{"uid": uid})
	return err
}
