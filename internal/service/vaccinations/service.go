package vaccinations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/felano-technologies/poultrycare/internal/domain/models"
	repo "github.com/felano-technologies/poultrycare/internal/repository/mongodb"
)

// ErrValidation indicates a malformed vaccination payload.
var ErrValidation = errors.New("invalid vaccination payload")

// ErrNotFound indicates the record does not exist for the caller's farm.
var ErrNotFound = errors.New("vaccination record not found")

// Service manages vaccination records.
type Service struct {
	repo   repo.VaccinationRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new vaccination service instance.
func NewService(repository repo.VaccinationRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repository,
		logger: logger,
		now:    time.Now,
	}
}

// Create stores one administration event.
func (s *Service) Create(ctx context.Context, farmID string, req models.SaveVaccinationRequest) (models.VaccinationRecord, error) {
	record, err := buildRecord(farmID, req)
	if err != nil {
		return models.VaccinationRecord{}, err
	}

	now := s.now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	created, err := s.repo.Insert(ctx, record)
	if err != nil {
		return models.VaccinationRecord{}, fmt.Errorf("create vaccination record: %w", err)
	}

	s.logger.Info("vaccination recorded",
		zap.String("farm_id", farmID),
		zap.String("flock", created.FlockName),
		zap.String("vaccine", created.Vaccine.Name),
		zap.Int("count", created.VaccinatedCount))
	return created, nil
}

// List returns every vaccination record owned by the farm.
func (s *Service) List(ctx context.Context, farmID string) ([]models.VaccinationRecord, error) {
	records, err := s.repo.ListByFarm(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("list vaccination records: %w", err)
	}
	return records, nil
}

// Update replaces one record's content, scoped to the farm.
func (s *Service) Update(ctx context.Context, farmID, id string, req models.SaveVaccinationRequest) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	record, err := buildRecord(farmID, req)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, farmID, oid, record); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update vaccination record: %w", err)
	}
	return nil
}

// Delete removes one record, scoped to the farm.
func (s *Service) Delete(ctx context.Context, farmID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, farmID, oid); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete vaccination record: %w", err)
	}
	return nil
}

func buildRecord(farmID string, req models.SaveVaccinationRequest) (models.VaccinationRecord, error) {
	if req.FlockName == "" || req.VaccineName == "" || req.VaccinatedCount <= 0 {
		return models.VaccinationRecord{}, ErrValidation
	}

	return models.VaccinationRecord{
		FarmID:    farmID,
		FlockName: req.FlockName,
		Vaccine: models.Vaccine{
			Name:         req.VaccineName,
			Type:         req.VaccineType,
			Manufacturer: req.Manufacturer,
			BatchNumber:  req.BatchNumber,
			ExpiryDate:   req.ExpiryDate,
		},
		DateAdministered: req.DateAdministered,
		VaccinatedCount:  req.VaccinatedCount,
		NextDueDate:      req.NextDueDate,
	}, nil
}
