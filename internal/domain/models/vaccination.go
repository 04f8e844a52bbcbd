package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vaccine holds the metadata of the administered product.
type Vaccine struct {
	Name         string     `bson:"name" json:"name"`
	Type         string     `bson:"type,omitempty" json:"type,omitempty"`
	Manufacturer string     `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	BatchNumber  string     `bson:"batch_number,omitempty" json:"batchNumber,omitempty"`
	ExpiryDate   *time.Time `bson:"expiry_date,omitempty" json:"expiryDate,omitempty"`
}

// VaccinationRecord captures one administration event for some count of birds.
// The flock is referenced by name, not by id; records never auto-expire.
type VaccinationRecord struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FarmID           string             `bson:"farm_id" json:"farmId"`
	FlockName        string             `bson:"flock_name" json:"flockName"`
	Vaccine          Vaccine            `bson:"vaccine" json:"vaccine"`
	DateAdministered time.Time          `bson:"date_administered" json:"dateAdministered"`
	VaccinatedCount  int                `bson:"vaccinated_count" json:"vaccinatedCount"`
	NextDueDate      *time.Time         `bson:"next_due_date,omitempty" json:"nextDueDate,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}
