package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound indicates the requested document does not exist or does not
// belong to the caller's farm. The two cases are deliberately
// indistinguishable so foreign records never leak their existence.
var ErrNotFound = errors.New("document not found")

const (
	flocksCollection        = "flocks"
	vaccinationsCollection  = "vaccinations"
	notificationsCollection = "notifications"
	snapshotsCollection     = "farm_reports"
)

// MongoDBRepository bundles the shared client handle behind the per-entity
// repository implementations.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// Flocks returns the flock repository bound to this connection.
func (r *MongoDBRepository) Flocks() FlockRepository {
	return &MongoFlockRepository{base: r}
}

// Vaccinations returns the vaccination repository bound to this connection.
func (r *MongoDBRepository) Vaccinations() VaccinationRepository {
	return &MongoVaccinationRepository{base: r}
}

// Notifications returns the notification repository bound to this connection.
func (r *MongoDBRepository) Notifications() NotificationRepository {
	return &MongoNotificationRepository{base: r}
}

// Snapshots returns the snapshot repository bound to this connection.
func (r *MongoDBRepository) Snapshots() SnapshotRepository {
	return &MongoSnapshotRepository{base: r}
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
