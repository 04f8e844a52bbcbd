package models

import "time"

// CreateFlockRequest is the payload for registering a new flock.
type CreateFlockRequest struct {
	Name            string    `json:"name" binding:"required"`
	BirdCount       int       `json:"birdCount" binding:"required,gte=0"`
	AcquisitionDate time.Time `json:"acquisitionDate" binding:"required"`
}

// AppendHealthEventRequest records a health state change against a flock.
type AppendHealthEventRequest struct {
	Date   *time.Time `json:"date"`
	Kind   string     `json:"kind" binding:"required"`
	Count  int        `json:"count" binding:"required,gt=0"`
	Remark string     `json:"remark"`
}

// AppendFeedEventRequest records feed administered to a flock.
type AppendFeedEventRequest struct {
	Date       *time.Time `json:"date"`
	FeedType   string     `json:"feedType" binding:"required"`
	QuantityKg float64    `json:"quantityKg" binding:"required,gt=0"`
	Remark     string     `json:"remark"`
}

// AppendEggEventRequest records egg production for a flock.
type AppendEggEventRequest struct {
	Date   *time.Time `json:"date"`
	Count  int        `json:"count" binding:"required,gt=0"`
	Remark string     `json:"remark"`
}

// SaveVaccinationRequest is the payload for creating or replacing a
// vaccination record.
type SaveVaccinationRequest struct {
	FlockName        string     `json:"flockName" binding:"required"`
	VaccineName      string     `json:"vaccineName" binding:"required"`
	VaccineType      string     `json:"vaccineType"`
	Manufacturer     string     `json:"manufacturer"`
	BatchNumber      string     `json:"batchNumber"`
	ExpiryDate       *time.Time `json:"expiryDate"`
	DateAdministered time.Time  `json:"dateAdministered" binding:"required"`
	VaccinatedCount  int        `json:"vaccinatedCount" binding:"required,gt=0"`
	NextDueDate      *time.Time `json:"nextDueDate"`
}

// CreateNotificationRequest is the payload for a user-created notification.
type CreateNotificationRequest struct {
	Type     string    `json:"type" binding:"required"`
	Message  string    `json:"message" binding:"required"`
	FlockID  string    `json:"flockId"`
	DueDate  time.Time `json:"dueDate" binding:"required"`
	Priority string    `json:"priority" binding:"required"`
}

// ChatRequest carries one farmer message to the AI assistant.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the assistant reply back to the caller.
type ChatResponse struct {
	Reply string `json:"reply"`
}
