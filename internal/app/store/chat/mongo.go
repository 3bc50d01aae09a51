// internal/app/store/chat/mongo.go
package chat

import (
	"context"
	"sync"

	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoStore struct {
	c   *mongo.Collection
	log *zap.Logger
}

// NewMongo returns the connected-mode chat store.
func NewMongo(db *mongo.Database, logger *zap.Logger) Store {
	return &mongoStore{c: db.Collection("chat_messages"), log: logger}
}

func (s *mongoStore) List(ctx context.Context, channel string) ([]models.ChatMessage, error) {
	cur, err := s.c.Find(ctx, bson.M{"channel": channel},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ChatMessage
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *mongoStore) Send(ctx context.Context, channel string, msg models.ChatMessage) (string, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.Channel = channel
	if _, err := s.c.InsertOne(ctx, msg); err != nil {
		return "", err
	}
	return msg.ID, nil
}

// Subscribe attaches to the collection's change stream, filtered to inserts
// on the channel. The callback gets the full channel history up front and a
// re-read of it after every insert, mirroring the demo-mode polling shape.
func (s *mongoStore) Subscribe(ctx context.Context, channel string, cb func([]models.ChatMessage)) (CancelFunc, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"operationType":        "insert",
			"fullDocument.channel": channel,
		}}},
	}
	cs, err := s.c.Watch(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	streamCtx, cancelStream := context.WithCancel(ctx)
	done := make(chan struct{})

	// Initial snapshot before any events.
	initial, err := s.List(ctx, channel)
	if err != nil {
		cancelStream()
		cs.Close(context.Background())
		return nil, err
	}
	cb(initial)

	go func() {
		defer close(done)
		defer cs.Close(context.Background())
		for cs.Next(streamCtx) {
			msgs, err := s.List(streamCtx, channel)
			if err != nil {
				s.log.Error("chat re-read after change event failed",
					zap.String("channel", channel), zap.Error(err))
				continue
			}
			cb(msgs)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancelStream()
			<-done
		})
	}, nil
}
