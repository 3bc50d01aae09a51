// internal/app/store/harvests/mongo.go
package harvests

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

// NewMongo returns the connected-mode harvest store.
func NewMongo(db *mongo.Database) Store {
	return &mongoStore{c: db.Collection("harvests")}
}

type harvestDoc struct {
	DocID             primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID           string             `bson:"owner_id"`
	models.HarvestLog `bson:",inline"`
}

func (s *mongoStore) List(ctx context.Context, userID string) ([]models.HarvestLog, error) {
	cur, err := s.c.Find(ctx, bson.M{"owner_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []harvestDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.HarvestLog, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.HarvestLog)
	}
	return out, nil
}

func (s *mongoStore) Add(ctx context.Context, userID string, h models.HarvestLog) (string, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	_, err := s.c.InsertOne(ctx, harvestDoc{OwnerID: userID, HarvestLog: h})
	if err != nil {
		return "", err
	}
	return h.ID, nil
}

func (s *mongoStore) Delete(ctx context.Context, userID, harvestID string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"owner_id": userID, "harvest_id": harvestID})
	return err
}

func (s *mongoStore) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"owner_id": userID})
	return err
}
