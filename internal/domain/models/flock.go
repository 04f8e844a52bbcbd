package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FlockStatus enumerates the lifecycle states of a flock.
type FlockStatus string

const (
	FlockActive FlockStatus = "active"
	FlockSold   FlockStatus = "sold"
	FlockSick   FlockStatus = "sick"
	FlockDead   FlockStatus = "dead"
)

// HealthEventKind enumerates health state transitions recorded against a flock.
// Egg production is deliberately not a health kind; it has its own event log.
type HealthEventKind string

const (
	HealthKindHealthy HealthEventKind = "healthy"
	HealthKindSick    HealthEventKind = "sick"
	HealthKindDead    HealthEventKind = "dead"
)

// ValidHealthKind reports whether the kind belongs to the declared enum.
func ValidHealthKind(kind HealthEventKind) bool {
	switch kind {
	case HealthKindHealthy, HealthKindSick, HealthKindDead:
		return true
	}
	return false
}

// HealthEvent captures birds changing health state within a flock.
type HealthEvent struct {
	Date   time.Time       `bson:"date" json:"date"`
	Kind   HealthEventKind `bson:"kind" json:"kind"`
	Count  int             `bson:"count" json:"count"`
	Remark string          `bson:"remark,omitempty" json:"remark,omitempty"`
}

// FeedEvent captures feed administered to a flock.
type FeedEvent struct {
	Date       *time.Time `bson:"date,omitempty" json:"date,omitempty"`
	FeedType   string     `bson:"feed_type" json:"feedType"`
	QuantityKg float64    `bson:"quantity_kg" json:"quantityKg"`
	Remark     string     `bson:"remark,omitempty" json:"remark,omitempty"`
}

// EggEvent captures egg production for a flock on a given day.
type EggEvent struct {
	Date   time.Time `bson:"date" json:"date"`
	Count  int       `bson:"count" json:"count"`
	Remark string    `bson:"remark,omitempty" json:"remark,omitempty"`
}

// Flock is a managed group of birds owned by exactly one farm.
//
// BirdCount is authoritative: it is decremented (floored at zero) whenever a
// dead health event is appended, while sick events only affect derived
// displays, never the stored count.
type Flock struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FarmID          string             `bson:"farm_id" json:"farmId"`
	Name            string             `bson:"name" json:"name"`
	BirdCount       int                `bson:"bird_count" json:"birdCount"`
	AcquisitionDate time.Time          `bson:"acquisition_date" json:"acquisitionDate"`
	Status          FlockStatus        `bson:"status" json:"status"`
	HealthLogs      []HealthEvent      `bson:"health_logs,omitempty" json:"healthLogs,omitempty"`
	FeedLogs        []FeedEvent        `bson:"feed_logs,omitempty" json:"feedLogs,omitempty"`
	EggLogs         []EggEvent         `bson:"egg_logs,omitempty" json:"eggLogs,omitempty"`
	LastHealthCheck *time.Time         `bson:"last_health_check,omitempty" json:"lastHealthCheck,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}
