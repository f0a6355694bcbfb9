package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdulsamad25/apartment-rentals/internal/app/config"
	"github.com/Abdulsamad25/apartment-rentals/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const snapshotCollection = "snapshots"

type snapshotDoc struct {
	Key  string `bson:"_id"`
	Data []byte `bson:"data"`
}

// SnapshotStore persists each collection snapshot as one document keyed
// by snapshot name, replaced wholesale on every save.
type SnapshotStore struct {
	collection *mongo.Collection
}

func NewSnapshotStore(client *mongo.Client, cfg config.MongoDBConfig) *SnapshotStore {
	return &SnapshotStore{
		collection: client.Database(cfg.Database).Collection(snapshotCollection),
	}
}

func (s *SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	var doc snapshotDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return doc.Data, nil
}

func (s *SnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": key},
		snapshotDoc{Key: key, Data: data},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

func (s *SnapshotStore) Delete(ctx context.Context, key string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", key, err)
	}
	return nil
}
