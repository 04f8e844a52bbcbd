package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/felano-technologies/poultrycare/internal/domain/models"
)

// FlockRepository defines the persistence operations for flocks. Every query
// is scoped to the owning farm.
type FlockRepository interface {
	Insert(ctx context.Context, flock models.Flock) (models.Flock, error)
	ListByFarm(ctx context.Context, farmID string) ([]models.Flock, error)
	GetByID(ctx context.Context, farmID string, id primitive.ObjectID) (models.Flock, error)
	AppendHealthEvent(ctx context.Context, farmID string, id primitive.ObjectID, event models.HealthEvent, birdCount int) error
	AppendFeedEvent(ctx context.Context, farmID string, id primitive.ObjectID, event models.FeedEvent) error
	AppendEggEvent(ctx context.Context, farmID string, id primitive.ObjectID, event models.EggEvent) error
	DistinctFarmIDs(ctx context.Context) ([]string, error)
}

// MongoFlockRepository implements FlockRepository against the flocks collection.
type MongoFlockRepository struct {
	base *MongoDBRepository
}

// Insert stores a new flock document and returns it with its assigned id.
func (r *MongoFlockRepository) Insert(ctx context.Context, flock models.Flock) (models.Flock, error) {
	result, err := r.base.collection(flocksCollection).InsertOne(ctx, flock)
	if err != nil {
		return models.Flock{}, fmt.Errorf("insert flock: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		flock.ID = oid
	}
	return flock, nil
}

// ListByFarm fetches every flock owned by the farm, with embedded event logs.
func (r *MongoFlockRepository) ListByFarm(ctx context.Context, farmID string) ([]models.Flock, error) {
	cursor, err := r.base.collection(flocksCollection).Find(ctx, bson.M{"farm_id": farmID})
	if err != nil {
		return nil, fmt.Errorf("list flocks for farm: %w", err)
	}
	defer cursor.Close(ctx)

	var flocks []models.Flock
	if err := cursor.All(ctx, &flocks); err != nil {
		return nil, fmt.Errorf("decode flocks: %w", err)
	}
	return flocks, nil
}

// GetByID fetches one flock by id, scoped to the owning farm.
func (r *MongoFlockRepository) GetByID(ctx context.Context, farmID string, id primitive.ObjectID) (models.Flock, error) {
	var flock models.Flock
	err := r.base.collection(flocksCollection).
		FindOne(ctx, bson.M{"_id": id, "farm_id": farmID}).
		Decode(&flock)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Flock{}, ErrNotFound
		}
		return models.Flock{}, fmt.Errorf("get flock: %w", err)
	}
	return flock, nil
}

// AppendHealthEvent pushes a health event and sets the recomputed bird count
// and last-check timestamp in a single update.
func (r *MongoFlockRepository) AppendHealthEvent(ctx context.Context, farmID string, id primitive.ObjectID, event models.HealthEvent, birdCount int) error {
	update := bson.M{
		"$push": bson.M{"health_logs": event},
		"$set": bson.M{
			"bird_count":        birdCount,
			"last_health_check": event.Date,
			"updated_at":        time.Now().UTC(),
		},
	}
	return r.updateOne(ctx, farmID, id, update)
}

// AppendFeedEvent pushes a feed event onto the flock's feed log.
func (r *MongoFlockRepository) AppendFeedEvent(ctx context.Context, farmID string, id primitive.ObjectID, event models.FeedEvent) error {
	update := bson.M{
		"$push": bson.M{"feed_logs": event},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	return r.updateOne(ctx, farmID, id, update)
}

// AppendEggEvent pushes an egg production event onto the flock's egg log.
func (r *MongoFlockRepository) AppendEggEvent(ctx context.Context, farmID string, id primitive.ObjectID, event models.EggEvent) error {
	update := bson.M{
		"$push": bson.M{"egg_logs": event},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	return r.updateOne(ctx, farmID, id, update)
}

// DistinctFarmIDs lists every farm owning at least one flock. Used by the
// nightly snapshot job.
func (r *MongoFlockRepository) DistinctFarmIDs(ctx context.Context) ([]string, error) {
	values, err := r.base.collection(flocksCollection).Distinct(ctx, "farm_id", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct farm ids: %w", err)
	}

	farmIDs := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			farmIDs = append(farmIDs, s)
		}
	}
	return farmIDs, nil
}

func (r *MongoFlockRepository) updateOne(ctx context.Context, farmID string, id primitive.ObjectID, update bson.M) error {
	result, err := r.base.collection(flocksCollection).
		UpdateOne(ctx, bson.M{"_id": id, "farm_id": farmID}, update, options.Update())
	if err != nil {
		return fmt.Errorf("update flock: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
