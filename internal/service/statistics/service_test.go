package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/felano-technologies/poultrycare/internal/config"
	"github.com/felano-technologies/poultrycare/internal/domain/models"
)

type fakeFlockRepo struct {
	flocks  []models.Flock
	listErr error
}

func (f *fakeFlockRepo) Insert(_ context.Context, flock models.Flock) (models.Flock, error) {
	f.flocks = append(f.flocks, flock)
	return flock, nil
}

func (f *fakeFlockRepo) ListByFarm(_ context.Context, _ string) ([]models.Flock, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.flocks, nil
}

func (f *fakeFlockRepo) GetByID(_ context.Context, _ string, _ primitive.ObjectID) (models.Flock, error) {
	return models.Flock{}, errors.New("not implemented")
}

func (f *fakeFlockRepo) AppendHealthEvent(_ context.Context, _ string, _ primitive.ObjectID, _ models.HealthEvent, _ int) error {
	return nil
}

func (f *fakeFlockRepo) AppendFeedEvent(_ context.Context, _ string, _ primitive.ObjectID, _ models.FeedEvent) error {
	return nil
}

func (f *fakeFlockRepo) AppendEggEvent(_ context.Context, _ string, _ primitive.ObjectID, _ models.EggEvent) error {
	return nil
}

func (f *fakeFlockRepo) DistinctFarmIDs(_ context.Context) ([]string, error) {
	return []string{"farm-1"}, nil
}

type fakeVaccinationRepo struct {
	records []models.VaccinationRecord
	listErr error
}

func (f *fakeVaccinationRepo) Insert(_ context.Context, record models.VaccinationRecord) (models.VaccinationRecord, error) {
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeVaccinationRepo) ListByFarm(_ context.Context, _ string) ([]models.VaccinationRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeVaccinationRepo) Update(_ context.Context, _ string, _ primitive.ObjectID, _ models.VaccinationRecord) error {
	return nil
}

func (f *fakeVaccinationRepo) Delete(_ context.Context, _ string, _ primitive.ObjectID) error {
	return nil
}

type fakeSnapshotRepo struct {
	snapshots []models.FarmSnapshot
}

func (f *fakeSnapshotRepo) Insert(_ context.Context, snapshot models.FarmSnapshot) error {
	f.snapshots = append(f.snapshots, snapshot)
	return nil
}

// 2026-03-11 is a Wednesday.
var testNow = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

func feedFlock(dates ...time.Time) models.Flock {
	var logs []models.FeedEvent
	for _, d := range dates {
		date := d
		logs = append(logs, models.FeedEvent{Date: &date, FeedType: "starter", QuantityKg: 10})
	}
	return models.Flock{Status: models.FlockActive, FeedLogs: logs}
}

func TestWeeklyFeedSeriesRollingBoundaries(t *testing.T) {
	start := testNow.Add(-7 * 24 * time.Hour)

	flock := feedFlock(
		testNow,                        // exactly now: included, Wednesday
		start.Add(-time.Second),        // 7 days + 1 second ago: excluded
		start,                          // exactly 7 days ago: included, Wednesday
		testNow.AddDate(0, 0, -2),      // Monday
		testNow.Add(24*time.Hour),      // future: excluded
	)
	flock.FeedLogs = append(flock.FeedLogs, models.FeedEvent{FeedType: "grower", QuantityKg: 99}) // nil date skipped

	stats := WeeklyFeedSeries([]models.Flock{flock}, start, testNow)

	require.Equal(t, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}, stats.Labels)
	assert.Equal(t, []float64{10, 0, 20, 0, 0, 0, 0}, stats.Series)
}

func TestWeeklyFeedSeriesEmptyInput(t *testing.T) {
	stats := WeeklyFeedSeries(nil, testNow.Add(-7*24*time.Hour), testNow)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 0}, stats.Series)
}

func TestFeedConsumptionCalendarWindow(t *testing.T) {
	// Monday of the test week is 2026-03-09; the Sunday before must be
	// excluded in calendar mode even though it is within the last 7 days.
	sundayBefore := time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	flocks := &fakeFlockRepo{flocks: []models.Flock{feedFlock(sundayBefore, tuesday)}}
	svc := NewService(flocks, &fakeVaccinationRepo{}, &fakeSnapshotRepo{}, config.WindowCalendar, nil)
	svc.now = func() time.Time { return testNow }

	stats, err := svc.FeedConsumption(context.Background(), "farm-1")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 10, 0, 0, 0, 0, 0}, stats.Series)
}

func TestFeedConsumptionRollingMergesWeeks(t *testing.T) {
	sundayBefore := time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)

	flocks := &fakeFlockRepo{flocks: []models.Flock{feedFlock(sundayBefore)}}
	svc := NewService(flocks, &fakeVaccinationRepo{}, &fakeSnapshotRepo{}, config.WindowRolling, nil)
	svc.now = func() time.Time { return testNow }

	stats, err := svc.FeedConsumption(context.Background(), "farm-1")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 10}, stats.Series)
}

func TestComputeFarmStatisticsZeroFlocks(t *testing.T) {
	stats := ComputeFarmStatistics(nil, nil)

	assert.Equal(t, 0, stats.FlocksCount)
	assert.Equal(t, 0, stats.TotalBirds)
	assert.Equal(t, "0%", stats.MortalityRate)
	assert.Equal(t, "0%", stats.VaccinationCoverage)
	assert.Equal(t, "0 kg/day", stats.AvgDailyFeed)
	assert.Equal(t, "0%", stats.EggProductionRate)
	assert.Nil(t, stats.LastVaccination)
}

func TestComputeFarmStatisticsRates(t *testing.T) {
	date := func(d int) *time.Time {
		v := testNow.AddDate(0, 0, -d)
		return &v
	}

	flocks := []models.Flock{
		{
			BirdCount: 600,
			HealthLogs: []models.HealthEvent{
				{Kind: models.HealthKindDead, Count: 30},
				{Kind: models.HealthKindSick, Count: 15},
			},
			FeedLogs: []models.FeedEvent{
				{Date: date(1), FeedType: "layer mash", QuantityKg: 40},
			},
			EggLogs: []models.EggEvent{{Date: testNow, Count: 450}},
		},
		{
			BirdCount: 400,
			HealthLogs: []models.HealthEvent{
				{Kind: models.HealthKindDead, Count: 20},
			},
			FeedLogs: []models.FeedEvent{
				{Date: date(30), FeedType: "grower", QuantityKg: 30}, // feed totals are not windowed
			},
		},
	}

	older := testNow.AddDate(0, 0, -20)
	latest := testNow.AddDate(0, 0, -4)
	records := []models.VaccinationRecord{
		{VaccinatedCount: 500, DateAdministered: older},
		{VaccinatedCount: 300, DateAdministered: latest},
	}

	stats := ComputeFarmStatistics(flocks, records)

	assert.Equal(t, 2, stats.FlocksCount)
	assert.Equal(t, 1000, stats.TotalBirds)
	assert.Equal(t, "5.0%", stats.MortalityRate)
	assert.Equal(t, "80.0%", stats.VaccinationCoverage)
	assert.Equal(t, "5.0 kg/day", stats.AvgDailyFeed)
	assert.Equal(t, "45.0%", stats.EggProductionRate)
	require.NotNil(t, stats.LastVaccination)
	assert.True(t, stats.LastVaccination.Equal(latest))
}

func TestFarmStatisticsFailsAsAWhole(t *testing.T) {
	storeErr := errors.New("socket closed")
	svc := NewService(&fakeFlockRepo{}, &fakeVaccinationRepo{listErr: storeErr}, &fakeSnapshotRepo{}, config.WindowRolling, nil)

	_, err := svc.FarmStatistics(context.Background(), "farm-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
}

func TestSnapshotAllWritesPerFarm(t *testing.T) {
	snapshots := &fakeSnapshotRepo{}
	svc := NewService(&fakeFlockRepo{flocks: []models.Flock{{FarmID: "farm-1", BirdCount: 10}}}, &fakeVaccinationRepo{}, snapshots, config.WindowRolling, nil)
	svc.now = func() time.Time { return testNow }

	require.NoError(t, svc.SnapshotAll(context.Background()))
	require.Len(t, snapshots.snapshots, 1)
	assert.Equal(t, "farm-1", snapshots.snapshots[0].FarmID)
	assert.Equal(t, 10, snapshots.snapshots[0].Statistics.TotalBirds)
}
