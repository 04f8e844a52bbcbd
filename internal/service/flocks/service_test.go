package flocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/felano-technologies/poultrycare/internal/domain/models"
	repo "github.com/felano-technologies/poultrycare/internal/repository/mongodb"
)

type fakeFlockRepo struct {
	flocks []models.Flock

	appendedEvent     models.HealthEvent
	appendedBirdCount int
	listErr           error
}

func (f *fakeFlockRepo) Insert(_ context.Context, flock models.Flock) (models.Flock, error) {
	flock.ID = primitive.NewObjectID()
	f.flocks = append(f.flocks, flock)
	return flock, nil
}

func (f *fakeFlockRepo) ListByFarm(_ context.Context, farmID string) ([]models.Flock, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Flock
	for _, flock := range f.flocks {
		if flock.FarmID == farmID {
			out = append(out, flock)
		}
	}
	return out, nil
}

func (f *fakeFlockRepo) GetByID(_ context.Context, farmID string, id primitive.ObjectID) (models.Flock, error) {
	for _, flock := range f.flocks {
		if flock.ID == id && flock.FarmID == farmID {
			return flock, nil
		}
	}
	return models.Flock{}, repo.ErrNotFound
}

func (f *fakeFlockRepo) AppendHealthEvent(_ context.Context, farmID string, id primitive.ObjectID, event models.HealthEvent, birdCount int) error {
	for i, flock := range f.flocks {
		if flock.ID == id && flock.FarmID == farmID {
			f.appendedEvent = event
			f.appendedBirdCount = birdCount
			f.flocks[i].BirdCount = birdCount
			f.flocks[i].HealthLogs = append(f.flocks[i].HealthLogs, event)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeFlockRepo) AppendFeedEvent(_ context.Context, farmID string, id primitive.ObjectID, event models.FeedEvent) error {
	for i, flock := range f.flocks {
		if flock.ID == id && flock.FarmID == farmID {
			f.flocks[i].FeedLogs = append(f.flocks[i].FeedLogs, event)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeFlockRepo) AppendEggEvent(_ context.Context, farmID string, id primitive.ObjectID, event models.EggEvent) error {
	for i, flock := range f.flocks {
		if flock.ID == id && flock.FarmID == farmID {
			f.flocks[i].EggLogs = append(f.flocks[i].EggLogs, event)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeFlockRepo) DistinctFarmIDs(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, flock := range f.flocks {
		if !seen[flock.FarmID] {
			seen[flock.FarmID] = true
			out = append(out, flock.FarmID)
		}
	}
	return out, nil
}

func TestAggregateStatusCounts(t *testing.T) {
	tests := []struct {
		name   string
		flocks []models.Flock
		want   models.FlockStatusCounts
	}{
		{
			name: "dead and sick subtracted from bird count",
			flocks: []models.Flock{{
				BirdCount: 100,
				Status:    models.FlockActive,
				HealthLogs: []models.HealthEvent{
					{Kind: models.HealthKindDead, Count: 5},
					{Kind: models.HealthKindSick, Count: 10},
				},
			}},
			want: models.FlockStatusCounts{Healthy: 85, Sick: 10, Dead: 5},
		},
		{
			name: "no health events counts full flock as healthy",
			flocks: []models.Flock{
				{BirdCount: 40, Status: models.FlockActive},
			},
			want: models.FlockStatusCounts{Healthy: 40},
		},
		{
			name: "healthy clamps at zero when losses exceed bird count",
			flocks: []models.Flock{{
				BirdCount: 10,
				Status:    models.FlockActive,
				HealthLogs: []models.HealthEvent{
					{Kind: models.HealthKindDead, Count: 8},
					{Kind: models.HealthKindSick, Count: 7},
				},
			}},
			want: models.FlockStatusCounts{Healthy: 0, Sick: 7, Dead: 8},
		},
		{
			name: "sold flocks count only toward sold",
			flocks: []models.Flock{
				{
					BirdCount: 50,
					Status:    models.FlockSold,
					HealthLogs: []models.HealthEvent{
						{Kind: models.HealthKindDead, Count: 2},
					},
				},
				{BirdCount: 30, Status: models.FlockActive},
			},
			want: models.FlockStatusCounts{Healthy: 30, Sold: 50},
		},
		{
			name: "no flocks yields all zeros",
			want: models.FlockStatusCounts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateStatusCounts(tt.flocks))
		})
	}
}

func TestStatusCountsFailsWhole(t *testing.T) {
	storeErr := errors.New("connection reset")
	svc := NewService(&fakeFlockRepo{listErr: storeErr}, nil)

	_, err := svc.StatusCounts(context.Background(), "farm-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
}

func TestAppendHealthEventDeadDecrementsBirdCount(t *testing.T) {
	fake := &fakeFlockRepo{}
	svc := NewService(fake, nil)

	flock, err := svc.Create(context.Background(), "farm-1", models.CreateFlockRequest{
		Name:            "Layers A",
		BirdCount:       100,
		AcquisitionDate: time.Now(),
	})
	require.NoError(t, err)

	err = svc.AppendHealthEvent(context.Background(), "farm-1", flock.ID.Hex(), models.AppendHealthEventRequest{
		Kind:  string(models.HealthKindDead),
		Count: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 95, fake.appendedBirdCount)
	assert.Equal(t, models.HealthKindDead, fake.appendedEvent.Kind)
}

func TestAppendHealthEventDeadClampsAtZero(t *testing.T) {
	fake := &fakeFlockRepo{}
	svc := NewService(fake, nil)

	flock, err := svc.Create(context.Background(), "farm-1", models.CreateFlockRequest{
		Name:            "Broilers",
		BirdCount:       3,
		AcquisitionDate: time.Now(),
	})
	require.NoError(t, err)

	err = svc.AppendHealthEvent(context.Background(), "farm-1", flock.ID.Hex(), models.AppendHealthEventRequest{
		Kind:  string(models.HealthKindDead),
		Count: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, fake.appendedBirdCount)
}

func TestAppendHealthEventSickKeepsBirdCount(t *testing.T) {
	fake := &fakeFlockRepo{}
	svc := NewService(fake, nil)

	flock, err := svc.Create(context.Background(), "farm-1", models.CreateFlockRequest{
		Name:            "Layers B",
		BirdCount:       60,
		AcquisitionDate: time.Now(),
	})
	require.NoError(t, err)

	err = svc.AppendHealthEvent(context.Background(), "farm-1", flock.ID.Hex(), models.AppendHealthEventRequest{
		Kind:  string(models.HealthKindSick),
		Count: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, fake.appendedBirdCount)
}

func TestAppendHealthEventValidation(t *testing.T) {
	svc := NewService(&fakeFlockRepo{}, nil)

	err := svc.AppendHealthEvent(context.Background(), "farm-1", primitive.NewObjectID().Hex(), models.AppendHealthEventRequest{
		Kind:  "egg",
		Count: 5,
	})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.AppendHealthEvent(context.Background(), "farm-1", primitive.NewObjectID().Hex(), models.AppendHealthEventRequest{
		Kind:  string(models.HealthKindDead),
		Count: 0,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAppendHealthEventForeignFlockIsNotFound(t *testing.T) {
	fake := &fakeFlockRepo{}
	svc := NewService(fake, nil)

	flock, err := svc.Create(context.Background(), "farm-1", models.CreateFlockRequest{
		Name:            "Layers C",
		BirdCount:       20,
		AcquisitionDate: time.Now(),
	})
	require.NoError(t, err)

	err = svc.AppendHealthEvent(context.Background(), "farm-2", flock.ID.Hex(), models.AppendHealthEventRequest{
		Kind:  string(models.HealthKindHealthy),
		Count: 20,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
