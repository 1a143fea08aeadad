package storage

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoOpTimeout = 10 * time.Second

// MongoStore is the Mongo-backed Snapshotter for deployments where
// snapshots must survive the host. Each store key maps to one document
// in the snapshots collection: {_id: key, data: <raw JSON>}.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
	key    string
}

type snapshotDoc struct {
	ID   string `bson:"_id"`
	Data []byte `bson:"data"`
}

// NewMongoClient connects and pings the deployment once; the resulting
// client is shared by the per-key stores.
func NewMongoClient(ctx context.Context, mongoURI string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// NewMongoStore creates a snapshotter for one store key.
func NewMongoStore(client *mongo.Client, dbName, key string) *MongoStore {
	return &MongoStore{
		client: client,
		col:    client.Database(dbName).Collection("snapshots"),
		key:    key,
	}
}

// Load reads the snapshot document into v. A missing document is not an
// error.
func (s *MongoStore) Load(v interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	var doc snapshotDoc
	err := s.col.FindOne(ctx, bson.M{"_id": s.key}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil
		}
		return err
	}

	return json.Unmarshal(doc.Data, v)
}

// Save upserts the snapshot document for this key.
func (s *MongoStore) Save(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	_, err = s.col.UpdateOne(
		ctx,
		bson.M{"_id": s.key},
		bson.M{"$set": bson.M{"data": data}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Exists checks if a snapshot document is present for this key.
func (s *MongoStore) Exists() bool {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, bson.M{"_id": s.key})
	return err == nil && n > 0
}
