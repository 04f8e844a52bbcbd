package notifications

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/felano-technologies/poultrycare/internal/config"
	"github.com/felano-technologies/poultrycare/internal/domain/models"
	repo "github.com/felano-technologies/poultrycare/internal/repository/mongodb"
)

// ErrValidation indicates a malformed notification payload.
var ErrValidation = errors.New("invalid notification payload")

// ErrNotFound indicates the notification does not exist for the caller's farm.
var ErrNotFound = errors.New("notification not found")

// Service derives the merged notification list and owns the two narrow
// mutations on the persisted subset (create, mark-as-read).
type Service struct {
	flocks        repo.FlockRepository
	vaccinations  repo.VaccinationRepository
	notifications repo.NotificationRepository
	cfg           config.NotificationsConfig
	logger        *zap.Logger
	now           func() time.Time
}

// NewService wires a new notification service instance.
func NewService(flocks repo.FlockRepository, vaccinations repo.VaccinationRepository, notifications repo.NotificationRepository, cfg config.NotificationsConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		flocks:        flocks,
		vaccinations:  vaccinations,
		notifications: notifications,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

// List produces the farm's ranked notification list: synthetic items derived
// fresh from the vaccination and flock collections, merged with the eligible
// persisted ones, sorted ascending by due date and capped overall. It is a
// pure read; nothing is written back.
func (s *Service) List(ctx context.Context, farmID string) ([]models.NotificationItem, error) {
	now := s.now().UTC()

	var (
		flocks    []models.Flock
		records   []models.VaccinationRecord
		persisted []models.Notification
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		flocks, err = s.flocks.ListByFarm(gctx, farmID)
		if err != nil {
			return fmt.Errorf("load flocks for notifications: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = s.vaccinations.ListByFarm(gctx, farmID)
		if err != nil {
			return fmt.Errorf("load vaccinations for notifications: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		persisted, err = s.notifications.ListDue(gctx, farmID, now, s.cfg.ListLimit)
		if err != nil {
			return fmt.Errorf("load persisted notifications: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := Derive(flocks, records, now, s.cfg)
	for _, n := range persisted {
		items = append(items, models.NotificationItem{
			ID:       n.ID.Hex(),
			Type:     n.Type,
			Message:  n.Message,
			Date:     n.DueDate,
			Priority: n.Priority,
			IsRead:   n.IsRead,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.Before(items[j].Date)
	})
	if len(items) > s.cfg.ListLimit {
		items = items[:s.cfg.ListLimit]
	}
	return items, nil
}

// Derive computes the synthetic notifications for one farm at the given
// instant: vaccinations falling due within the lookahead window, and flocks
// whose last health check is stale or missing. A never-checked flock gets a
// sentinel due date one day past the staleness horizon so it ranks ahead of
// merely stale ones.
func Derive(flocks []models.Flock, records []models.VaccinationRecord, now time.Time, cfg config.NotificationsConfig) []models.NotificationItem {
	var items []models.NotificationItem

	lookahead := now.AddDate(0, 0, cfg.VaccinationLookaheadDays)
	for _, record := range records {
		if record.NextDueDate == nil {
			continue
		}
		due := record.NextDueDate.UTC()
		if due.Before(now) || due.After(lookahead) {
			continue
		}
		items = append(items, models.NotificationItem{
			Type:     models.NotificationVaccination,
			Message:  fmt.Sprintf("Vaccination %s is due for flock %s", record.Vaccine.Name, record.FlockName),
			Date:     due,
			Priority: models.PriorityHigh,
		})
	}

	staleBefore := now.AddDate(0, 0, -cfg.HealthCheckStaleDays)
	for _, flock := range flocks {
		switch {
		case flock.LastHealthCheck == nil:
			items = append(items, models.NotificationItem{
				Type:     models.NotificationHealthCheck,
				Message:  fmt.Sprintf("Flock %s has never had a health check", flock.Name),
				Date:     now.AddDate(0, 0, -(cfg.HealthCheckStaleDays + 1)),
				Priority: models.PriorityMedium,
			})
		case flock.LastHealthCheck.Before(staleBefore):
			items = append(items, models.NotificationItem{
				Type:     models.NotificationHealthCheck,
				Message:  fmt.Sprintf("Flock %s is overdue for a health check", flock.Name),
				Date:     flock.LastHealthCheck.UTC(),
				Priority: models.PriorityMedium,
			})
		}
	}

	return items
}

// Create stores a user-created notification.
func (s *Service) Create(ctx context.Context, farmID string, req models.CreateNotificationRequest) (models.Notification, error) {
	notificationType := models.NotificationType(req.Type)
	priority := models.NotificationPriority(req.Priority)
	if !models.ValidNotificationType(notificationType) || !models.ValidPriority(priority) || req.Message == "" {
		return models.Notification{}, ErrValidation
	}

	notification := models.Notification{
		FarmID:    farmID,
		Type:      notificationType,
		Message:   req.Message,
		DueDate:   req.DueDate,
		Priority:  priority,
		CreatedAt: s.now().UTC(),
	}

	if req.FlockID != "" {
		oid, err := primitive.ObjectIDFromHex(req.FlockID)
		if err != nil {
			return models.Notification{}, ErrValidation
		}
		notification.FlockID = &oid
	}

	created, err := s.notifications.Insert(ctx, notification)
	if err != nil {
		return models.Notification{}, fmt.Errorf("create notification: %w", err)
	}
	return created, nil
}

// MarkRead flips the read flag on one persisted notification. The lookup is
// farm-scoped, so a foreign id reads as not found. The operation is
// idempotent: marking an already-read notification succeeds.
func (s *Service) MarkRead(ctx context.Context, farmID, id string) (models.Notification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Notification{}, ErrNotFound
	}

	updated, err := s.notifications.MarkRead(ctx, farmID, oid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Notification{}, ErrNotFound
		}
		return models.Notification{}, fmt.Errorf("mark notification read: %w", err)
	}
	return updated, nil
}
