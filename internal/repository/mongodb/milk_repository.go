package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/dairyledger/internal/domain/models"
)

// MilkRepository defines the persistence operations for milk entries.
type MilkRepository interface {
	Create(ctx context.Context, entry models.MilkEntry) (models.MilkEntry, error)
	FindAll(ctx context.Context) ([]models.MilkEntry, error)
	FindByDate(ctx context.Context, date string) ([]models.MilkEntry, error)
	FindByDateRange(ctx context.Context, from, to string) ([]models.MilkEntry, error)
	Update(ctx context.Context, id string, entry models.MilkEntry) (models.MilkEntry, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

// MilkMongoRepository implements MilkRepository on the milk_entries collection.
type MilkMongoRepository struct {
	coll *mongo.Collection
}

// Create inserts the entry and returns it with the generated id.
func (r *MilkMongoRepository) Create(ctx context.Context, entry models.MilkEntry) (models.MilkEntry, error) {
	res, err := r.coll.InsertOne(ctx, entry)
	if err != nil {
		return models.MilkEntry{}, fmt.Errorf("failed to insert milk entry: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid
	}
	return entry, nil
}

// FindAll returns every entry, newest date first.
func (r *MilkMongoRepository) FindAll(ctx context.Context) ([]models.MilkEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

// FindByDate returns the entries whose date matches exactly.
func (r *MilkMongoRepository) FindByDate(ctx context.Context, date string) ([]models.MilkEntry, error) {
	return r.find(ctx, bson.M{"date": date}, nil)
}

// FindByDateRange returns the entries with from <= date <= to, ascending.
func (r *MilkMongoRepository) FindByDateRange(ctx context.Context, from, to string) ([]models.MilkEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	return r.find(ctx, bson.M{"date": bson.M{"$gte": from, "$lte": to}}, opts)
}

func (r *MilkMongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.MilkEntry, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query milk entries: %w", err)
	}

	entries := []models.MilkEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode milk entries: %w", err)
	}
	return entries, nil
}

// Update replaces the stored record wholesale; the id itself is immutable.
func (r *MilkMongoRepository) Update(ctx context.Context, id string, entry models.MilkEntry) (models.MilkEntry, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.MilkEntry{}, err
	}

	entry.ID = primitive.NilObjectID
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, entry)
	if err != nil {
		return models.MilkEntry{}, fmt.Errorf("failed to update milk entry %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.MilkEntry{}, ErrNotFound
	}

	entry.ID = oid
	return entry, nil
}

// Delete removes one entry by id.
func (r *MilkMongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete milk entry %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany removes every entry whose id appears in ids, in a single call.
// Missing or malformed ids are skipped rather than failing the batch.
func (r *MilkMongoRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids := parseIDs(ids)
	if len(oids) == 0 {
		return 0, nil
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete milk entries: %w", err)
	}
	return res.DeletedCount, nil
}
