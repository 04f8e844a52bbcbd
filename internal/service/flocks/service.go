package flocks

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

// ErrValidation indicates a mutation payload failed domain validation. It is
// raised before any persistence is attempted.
var ErrValidation = errors.New("invalid flock payload")

// ErrNotFound indicates the flock does not exist for the caller's farm.
var ErrNotFound = errors.New("flock not found")

// Service manages flocks and their embedded event logs.
type Service struct {
	repo   repo.FlockRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new flock service instance.
func NewService(repository repo.FlockRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repository,
		logger: logger,
		now:    time.Now,
	}
}

// Create registers a new flock for the farm.
func (s *Service) Create(ctx context.Context, farmID string, req models.CreateFlockRequest) (models.Flock, error) {
	if req.Name == "" || req.BirdCount < 0 {
		return models.Flock{}, ErrValidation
	}

	now := s.now().UTC()
	flock := models.Flock{
		FarmID:          farmID,
		Name:            req.Name,
		BirdCount:       req.BirdCount,
		AcquisitionDate: req.AcquisitionDate,
		Status:          models.FlockActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Insert(ctx, flock)
	if err != nil {
		return models.Flock{}, fmt.Errorf("create flock: %w", err)
	}

	s.logger.Info("flock registered",
		zap.String("farm_id", farmID),
		zap.String("flock", created.Name),
		zap.Int("bird_count", created.BirdCount))
	return created, nil
}

// List returns every flock owned by the farm.
func (s *Service) List(ctx context.Context, farmID string) ([]models.Flock, error) {
	flocks, err := s.repo.ListByFarm(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("list flocks: %w", err)
	}
	return flocks, nil
}

// Get returns one flock by id, scoped to the farm.
func (s *Service) Get(ctx context.Context, farmID, id string) (models.Flock, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Flock{}, ErrNotFound
	}

	flock, err := s.repo.GetByID(ctx, farmID, oid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Flock{}, ErrNotFound
		}
		return models.Flock{}, fmt.Errorf("get flock: %w", err)
	}
	return flock, nil
}

// AppendHealthEvent records a health state change. Dead events decrement the
// stored bird count, floored at zero; sick events leave it untouched and are
// subtracted only in derived displays. Any event refreshes the flock's
// last-health-check timestamp.
func (s *Service) AppendHealthEvent(ctx context.Context, farmID, id string, req models.AppendHealthEventRequest) error {
	kind := models.HealthEventKind(req.Kind)
	if !models.ValidHealthKind(kind) || req.Count <= 0 {
		return ErrValidation
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	flock, err := s.repo.GetByID(ctx, farmID, oid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load flock for health event: %w", err)
	}

	event := models.HealthEvent{
		Date:   s.eventDate(req.Date),
		Kind:   kind,
		Count:  req.Count,
		Remark: req.Remark,
	}

	birdCount := flock.BirdCount
	if kind == models.HealthKindDead {
		birdCount -= req.Count
		if birdCount < 0 {
			birdCount = 0
		}
	}

	if err := s.repo.AppendHealthEvent(ctx, farmID, oid, event, birdCount); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("append health event: %w", err)
	}

	s.logger.Info("health event appended",
		zap.String("farm_id", farmID),
		zap.String("flock_id", id),
		zap.String("kind", string(kind)),
		zap.Int("count", req.Count))
	return nil
}

// AppendFeedEvent records feed administered to a flock.
func (s *Service) AppendFeedEvent(ctx context.Context, farmID, id string, req models.AppendFeedEventRequest) error {
	if req.FeedType == "" || req.QuantityKg <= 0 {
		return ErrValidation
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	date := s.eventDate(req.Date)
	event := models.FeedEvent{
		Date:       &date,
		FeedType:   req.FeedType,
		QuantityKg: req.QuantityKg,
		Remark:     req.Remark,
	}

	if err := s.repo.AppendFeedEvent(ctx, farmID, oid, event); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("append feed event: %w", err)
	}
	return nil
}

// AppendEggEvent records egg production for a flock.
func (s *Service) AppendEggEvent(ctx context.Context, farmID, id string, req models.AppendEggEventRequest) error {
	if req.Count <= 0 {
		return ErrValidation
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	event := models.EggEvent{
		Date:   s.eventDate(req.Date),
		Count:  req.Count,
		Remark: req.Remark,
	}

	if err := s.repo.AppendEggEvent(ctx, farmID, oid, event); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("append egg event: %w", err)
	}
	return nil
}

// StatusCounts folds every flock's health log into farm-wide bird tallies.
func (s *Service) StatusCounts(ctx context.Context, farmID string) (models.FlockStatusCounts, error) {
	flocks, err := s.repo.ListByFarm(ctx, farmID)
	if err != nil {
		return models.FlockStatusCounts{}, fmt.Errorf("load flocks for status counts: %w", err)
	}
	return AggregateStatusCounts(flocks), nil
}

// AggregateStatusCounts computes the healthy/sick/dead/sold tallies across
// flocks. Buckets are mutually exclusive: a sold flock contributes its full
// bird count to sold and nothing to the live buckets. For live flocks,
// healthy = birdCount - dead - sick, floored at zero; a flock with no health
// events contributes its full bird count to healthy.
func AggregateStatusCounts(flocks []models.Flock) models.FlockStatusCounts {
	var counts models.FlockStatusCounts

	for _, flock := range flocks {
		if flock.Status == models.FlockSold {
			counts.Sold += flock.BirdCount
			continue
		}

		var dead, sick int
		for _, event := range flock.HealthLogs {
			switch event.Kind {
			case models.HealthKindDead:
				dead += event.Count
			case models.HealthKindSick:
				sick += event.Count
			}
		}

		healthy := flock.BirdCount - dead - sick
		if healthy < 0 {
			healthy = 0
		}

		counts.Healthy += healthy
		counts.Sick += sick
		counts.Dead += dead
	}

	return counts
}

func (s *Service) eventDate(date *time.Time) time.Time {
	if date != nil {
		return date.UTC()
	}
	return s.now().UTC()
}
