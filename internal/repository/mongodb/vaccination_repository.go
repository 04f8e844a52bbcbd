package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/felano-technologies/poultrycare/internal/domain/models"
)

// VaccinationRepository defines the persistence operations for vaccination
// records, scoped to the owning farm.
type VaccinationRepository interface {
	Insert(ctx context.Context, record models.VaccinationRecord) (models.VaccinationRecord, error)
	ListByFarm(ctx context.Context, farmID string) ([]models.VaccinationRecord, error)
	Update(ctx context.Context, farmID string, id primitive.ObjectID, record models.VaccinationRecord) error
	Delete(ctx context.Context, farmID string, id primitive.ObjectID) error
}

// MongoVaccinationRepository implements VaccinationRepository.
type MongoVaccinationRepository struct {
	base *MongoDBRepository
}

// Insert stores a new vaccination record.
func (r *MongoVaccinationRepository) Insert(ctx context.Context, record models.VaccinationRecord) (models.VaccinationRecord, error) {
	result, err := r.base.collection(vaccinationsCollection).InsertOne(ctx, record)
	if err != nil {
		return models.VaccinationRecord{}, fmt.Errorf("insert vaccination record: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}
	return record, nil
}

// ListByFarm fetches every vaccination record owned by the farm.
func (r *MongoVaccinationRepository) ListByFarm(ctx context.Context, farmID string) ([]models.VaccinationRecord, error) {
	cursor, err := r.base.collection(vaccinationsCollection).Find(ctx, bson.M{"farm_id": farmID})
	if err != nil {
		return nil, fmt.Errorf("list vaccinations for farm: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.VaccinationRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode vaccinations: %w", err)
	}
	return records, nil
}

// Update replaces the mutable fields of one record, scoped to the farm.
func (r *MongoVaccinationRepository) Update(ctx context.Context, farmID string, id primitive.ObjectID, record models.VaccinationRecord) error {
	update := bson.M{"$set": bson.M{
		"flock_name":        record.FlockName,
		"vaccine":           record.Vaccine,
		"date_administered": record.DateAdministered,
		"vaccinated_count":  record.VaccinatedCount,
		"next_due_date":     record.NextDueDate,
		"updated_at":        time.Now().UTC(),
	}}

	result, err := r.base.collection(vaccinationsCollection).
		UpdateOne(ctx, bson.M{"_id": id, "farm_id": farmID}, update)
	if err != nil {
		return fmt.Errorf("update vaccination record: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one record, scoped to the farm.
func (r *MongoVaccinationRepository) Delete(ctx context.Context, farmID string, id primitive.ObjectID) error {
	result, err := r.base.collection(vaccinationsCollection).
		DeleteOne(ctx, bson.M{"_id": id, "farm_id": farmID})
	if err != nil {
		return fmt.Errorf("delete vaccination record: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
