// internal/app/store/plants/mongo.go
package plants

import (
	"context"

	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoStore struct {
	c *mongo.Collection
}

// NewMongo returns the connected-mode plant store.
func NewMongo(db *mongo.Database) Store {
	return &mongoStore{c: db.Collection("plants")}
}

// plantDoc wraps a Plant with its owner for multi-tenant scoping. The
// Mongo _id stays internal; callers only ever see the plant_id string.
type plantDoc struct {
	DocID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID      string             `bson:"owner_id"`
	models.Plant `bson:",inline"`
}

func (s *mongoStore) List(ctx context.Context, userID string) ([]models.Plant, error) {
	cur, err := s.c.Find(ctx, bson.M{"owner_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []plantDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Plant, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Plant)
	}
	return out, nil
}

func (s *mongoStore) Add(ctx context.Context, userID string, p models.Plant) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := s.c.InsertOne(ctx, plantDoc{OwnerID: userID, Plant: p})
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

func (s *mongoStore) UpdateStatus(ctx context.Context, userID, plantID string, isPlanted bool) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"owner_id": userID, "plant_id": plantID},
		bson.M{"$set": bson.M{"is_planted": isPlanted}})
	return err
}

func (s *mongoStore) Delete(ctx context.Context, userID, plantID string) error {
	// DeleteOne with no match is a no-op, which is the contract.
	_, err := s.c.DeleteOne(ctx, bson.M{"owner_id": userID, "plant_id": plantID})
	return err
}

func (s *mongoStore) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"owner_id": userID})
	return err
}
