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

// HealthRepository defines the persistence operations for cow-health logs.
type HealthRepository interface {
	Create(ctx context.Context, log models.CowHealthLog) (models.CowHealthLog, error)
	FindAll(ctx context.Context) ([]models.CowHealthLog, error)
	FindByDateRange(ctx context.Context, from, to string) ([]models.CowHealthLog, error)
	Update(ctx context.Context, id string, log models.CowHealthLog) (models.CowHealthLog, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

// HealthMongoRepository implements HealthRepository on the cow_health collection.
type HealthMongoRepository struct {
	coll *mongo.Collection
}

// Create inserts the log and returns it with the generated id.
func (r *HealthMongoRepository) Create(ctx context.Context, log models.CowHealthLog) (models.CowHealthLog, error) {
	res, err := r.coll.InsertOne(ctx, log)
	if err != nil {
		return models.CowHealthLog{}, fmt.Errorf("failed to insert cow health log: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		log.ID = oid
	}
	return log, nil
}

// FindAll returns every log, newest date first.
func (r *HealthMongoRepository) FindAll(ctx context.Context) ([]models.CowHealthLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

// FindByDateRange returns the logs with from <= date <= to, ascending.
func (r *HealthMongoRepository) FindByDateRange(ctx context.Context, from, to string) ([]models.CowHealthLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	return r.find(ctx, bson.M{"date": bson.M{"$gte": from, "$lte": to}}, opts)
}

func (r *HealthMongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.CowHealthLog, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cow health logs: %w", err)
	}

	logs := []models.CowHealthLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode cow health logs: %w", err)
	}
	return logs, nil
}

// Update replaces the stored record wholesale; the id itself is immutable.
func (r *HealthMongoRepository) Update(ctx context.Context, id string, log models.CowHealthLog) (models.CowHealthLog, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.CowHealthLog{}, err
	}

	log.ID = primitive.NilObjectID
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, log)
	if err != nil {
		return models.CowHealthLog{}, fmt.Errorf("failed to update cow health log %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.CowHealthLog{}, ErrNotFound
	}

	log.ID = oid
	return log, nil
}

// Delete removes one log by id.
func (r *HealthMongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete cow health log %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany removes every log whose id appears in ids, in a single call.
func (r *HealthMongoRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids := parseIDs(ids)
	if len(oids) == 0 {
		return 0, nil
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete cow health logs: %w", err)
	}
	return res.DeletedCount, nil
}
