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

// NotificationRepository defines the persistence operations for user-created
// notifications, scoped to the owning farm.
type NotificationRepository interface {
	Insert(ctx context.Context, notification models.Notification) (models.Notification, error)
	ListDue(ctx context.Context, farmID string, now time.Time, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, farmID string, id primitive.ObjectID) (models.Notification, error)
}

// MongoNotificationRepository implements NotificationRepository.
type MongoNotificationRepository struct {
	base *MongoDBRepository
}

// Insert stores a new notification.
func (r *MongoNotificationRepository) Insert(ctx context.Context, notification models.Notification) (models.Notification, error) {
	result, err := r.base.collection(notificationsCollection).InsertOne(ctx, notification)
	if err != nil {
		return models.Notification{}, fmt.Errorf("insert notification: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		notification.ID = oid
	}
	return notification, nil
}

// ListDue fetches the farm's actionable notifications: unread or high
// priority, not yet past due, soonest first, capped at limit.
func (r *MongoNotificationRepository) ListDue(ctx context.Context, farmID string, now time.Time, limit int) ([]models.Notification, error) {
	filter := bson.M{
		"farm_id":  farmID,
		"due_date": bson.M{"$gte": now},
		"$or": []bson.M{
			{"is_read": false},
			{"priority": models.PriorityHigh},
		},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "due_date", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.base.collection(notificationsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list due notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flips the read flag on one notification. The filter carries both
// the id and the farm so a foreign record reads as missing. Repeat calls on
// an already-read record still match and succeed.
func (r *MongoNotificationRepository) MarkRead(ctx context.Context, farmID string, id primitive.ObjectID) (models.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Notification
	err := r.base.collection(notificationsCollection).
		FindOneAndUpdate(ctx,
			bson.M{"_id": id, "farm_id": farmID},
			bson.M{"$set": bson.M{"is_read": true}},
			opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Notification{}, ErrNotFound
		}
		return models.Notification{}, fmt.Errorf("mark notification read: %w", err)
	}
	return updated, nil
}
