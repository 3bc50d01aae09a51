// internal/app/store/plans/mongo.go
package plans

import (
	"context"
	"time"

	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoStore struct {
	c *mongo.Collection
}

// NewMongo returns the connected-mode saved-plan store.
func NewMongo(db *mongo.Database) Store {
	return &mongoStore{c: db.Collection("saved_plans")}
}

func (s *mongoStore) List(ctx context.Context, userID string) ([]models.SavedPlan, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.SavedPlan
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *mongoStore) Save(ctx context.Context, userID, name string, plan models.PlantingPlan) (string, error) {
	sp := models.SavedPlan{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Data:      plan,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, sp); err != nil {
		return "", err
	}
	return sp.ID, nil
}

func (s *mongoStore) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
