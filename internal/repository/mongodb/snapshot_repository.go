package mongodb

import (
	"context"
	"fmt"

	"github.com/felano-technologies/poultrycare/internal/domain/models"
)

// SnapshotRepository stores the nightly per-farm statistics snapshots.
type SnapshotRepository interface {
	Insert(ctx context.Context, snapshot models.FarmSnapshot) error
}

// MongoSnapshotRepository implements SnapshotRepository.
type MongoSnapshotRepository struct {
	base *MongoDBRepository
}

// Insert appends a snapshot document.
func (r *MongoSnapshotRepository) Insert(ctx context.Context, snapshot models.FarmSnapshot) error {
	if _, err := r.base.collection(snapshotsCollection).InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("insert farm snapshot: %w", err)
	}
	return nil
}
