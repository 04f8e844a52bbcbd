package statistics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/felano-technologies/poultrycare/internal/config"
	"github.com/felano-technologies/poultrycare/internal/domain/models"
	repo "github.com/felano-technologies/poultrycare/internal/repository/mongodb"
)

// weekdayLabels is the fixed Monday-first label row of the feed series.
var weekdayLabels = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Service derives farm-level KPIs from the raw event logs. All outputs are
// recomputed per request; nothing here is cached or persisted except by the
// explicit snapshot path.
type Service struct {
	flocks       repo.FlockRepository
	vaccinations repo.VaccinationRepository
	snapshots    repo.SnapshotRepository
	windowMode   config.FeedWindowMode
	logger       *zap.Logger
	now          func() time.Time
}

// NewService wires a new statistics service instance.
func NewService(flocks repo.FlockRepository, vaccinations repo.VaccinationRepository, snapshots repo.SnapshotRepository, windowMode config.FeedWindowMode, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		flocks:       flocks,
		vaccinations: vaccinations,
		snapshots:    snapshots,
		windowMode:   windowMode,
		logger:       logger,
		now:          time.Now,
	}
}

// FeedConsumption sums feed quantities into a fixed Mon..Sun series over the
// configured week window. Zero matching events yield an all-zero series.
func (s *Service) FeedConsumption(ctx context.Context, farmID string) (models.FeedConsumptionStats, error) {
	flocks, err := s.flocks.ListByFarm(ctx, farmID)
	if err != nil {
		return models.FeedConsumptionStats{}, fmt.Errorf("load flocks for feed stats: %w", err)
	}

	now := s.now().UTC()
	start := windowStart(s.windowMode, now)
	return WeeklyFeedSeries(flocks, start, now), nil
}

// WeeklyFeedSeries buckets feed events dated within [start, end] (both
// inclusive) into per-weekday sums. Events without a date are skipped. When
// the window spans a calendar week boundary, events from both weeks land in
// the same weekday slot.
func WeeklyFeedSeries(flocks []models.Flock, start, end time.Time) models.FeedConsumptionStats {
	series := make([]float64, len(weekdayLabels))

	for _, flock := range flocks {
		for _, event := range flock.FeedLogs {
			if event.Date == nil {
				continue
			}
			date := event.Date.UTC()
			if date.Before(start) || date.After(end) {
				continue
			}
			series[weekdayIndex(date.Weekday())] += event.QuantityKg
		}
	}

	labels := make([]string, len(weekdayLabels))
	copy(labels, weekdayLabels)
	return models.FeedConsumptionStats{Labels: labels, Series: series}
}

// FarmStatistics combines the flock and vaccination collections into the
// derived KPI set. Both reads fan out concurrently and must both succeed; a
// failure of either fails the whole computation with no partial result.
func (s *Service) FarmStatistics(ctx context.Context, farmID string) (models.FarmStatistics, error) {
	var (
		flocks  []models.Flock
		records []models.VaccinationRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		flocks, err = s.flocks.ListByFarm(gctx, farmID)
		if err != nil {
			return fmt.Errorf("load flocks for statistics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = s.vaccinations.ListByFarm(gctx, farmID)
		if err != nil {
			return fmt.Errorf("load vaccinations for statistics: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.FarmStatistics{}, err
	}

	return ComputeFarmStatistics(flocks, records), nil
}

// ComputeFarmStatistics derives the KPI set from a snapshot of the farm's
// collections. Every division is zero-guarded; the rate fields are always
// well-formed strings.
func ComputeFarmStatistics(flocks []models.Flock, records []models.VaccinationRecord) models.FarmStatistics {
	var totalBirds, deadBirds, eggCount int
	var totalFeed float64

	for _, flock := range flocks {
		totalBirds += flock.BirdCount
		for _, event := range flock.HealthLogs {
			if event.Kind == models.HealthKindDead {
				deadBirds += event.Count
			}
		}
		for _, event := range flock.FeedLogs {
			totalFeed += event.QuantityKg
		}
		for _, event := range flock.EggLogs {
			eggCount += event.Count
		}
	}

	var vaccinatedBirds int
	var lastVaccination *time.Time
	for _, record := range records {
		vaccinatedBirds += record.VaccinatedCount
		administered := record.DateAdministered
		if lastVaccination == nil || administered.After(*lastVaccination) {
			lastVaccination = &administered
		}
	}

	return models.FarmStatistics{
		FlocksCount:         len(flocks),
		TotalBirds:          totalBirds,
		MortalityRate:       formatPercent(deadBirds, totalBirds),
		VaccinationCoverage: formatPercent(vaccinatedBirds, totalBirds),
		AvgDailyFeed:        formatAvgDailyFeed(totalFeed, len(flocks)),
		EggProductionRate:   formatPercent(eggCount, totalBirds),
		LastVaccination:     lastVaccination,
	}
}

// SnapshotAll computes and persists the current statistics of every farm that
// owns at least one flock. Used by the nightly scheduler; per-farm failures
// are logged and do not stop the sweep.
func (s *Service) SnapshotAll(ctx context.Context) error {
	farmIDs, err := s.flocks.DistinctFarmIDs(ctx)
	if err != nil {
		return fmt.Errorf("list farms for snapshot: %w", err)
	}

	now := s.now().UTC()
	for _, farmID := range farmIDs {
		stats, err := s.FarmStatistics(ctx, farmID)
		if err != nil {
			s.logger.Error("snapshot computation failed", zap.String("farm_id", farmID), zap.Error(err))
			continue
		}

		snapshot := models.FarmSnapshot{
			FarmID:     farmID,
			Date:       now.Truncate(24 * time.Hour),
			Statistics: stats,
			CreatedAt:  now,
		}
		if err := s.snapshots.Insert(ctx, snapshot); err != nil {
			s.logger.Error("snapshot insert failed", zap.String("farm_id", farmID), zap.Error(err))
		}
	}

	s.logger.Info("farm snapshots written", zap.Int("farms", len(farmIDs)))
	return nil
}

// windowStart anchors the feed window: a trailing 7-day lookback in rolling
// mode, the current week's Monday midnight in calendar mode. Both windows end
// at the request instant.
func windowStart(mode config.FeedWindowMode, now time.Time) time.Time {
	if mode == config.WindowCalendar {
		return mondayStart(now)
	}
	return now.Add(-7 * 24 * time.Hour)
}

func mondayStart(t time.Time) time.Time {
	daysSinceMonday := weekdayIndex(t.Weekday())
	start := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
}

// weekdayIndex maps time.Weekday (Sunday == 0) onto the Monday-first series.
func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func formatPercent(numerator, denominator int) string {
	if denominator == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(numerator)/float64(denominator)*100)
}

func formatAvgDailyFeed(totalFeedKg float64, flocksCount int) string {
	if flocksCount == 0 {
		return "0 kg/day"
	}
	return fmt.Sprintf("%.1f kg/day", totalFeedKg/float64(flocksCount)/7)
}
