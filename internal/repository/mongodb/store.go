package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	milkCollection   = "milk_entries"
	healthCollection = "cow_health"
)

var (
	// ErrNotFound reports an id that matched no stored record.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID reports an id string that is not a valid object id.
	ErrInvalidID = errors.New("invalid record id")
)

// Store owns the MongoDB client shared by the per-collection repositories.
// It is constructed once at startup and closed on shutdown; nothing else in
// the process holds connection state.
type Store struct {
	client *mongo.Client
	dbName string
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: dbName}, nil
}

// Milk returns the milk-entry repository backed by this store.
func (s *Store) Milk() *MilkMongoRepository {
	return &MilkMongoRepository{coll: s.client.Database(s.dbName).Collection(milkCollection)}
}

// Health returns the cow-health repository backed by this store.
func (s *Store) Health() *HealthMongoRepository {
	return &HealthMongoRepository{coll: s.client.Database(s.dbName).Collection(healthCollection)}
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// parseIDs keeps only the well-formed ids so a bulk delete stays idempotent
// over stale or malformed entries in the request list.
func parseIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	return oids
}
