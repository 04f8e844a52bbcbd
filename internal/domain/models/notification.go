package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType enumerates supported notification categories.
type NotificationType string

const (
	NotificationVaccination NotificationType = "vaccination"
	NotificationHealthCheck NotificationType = "health-check"
	NotificationFeed        NotificationType = "feed"
	NotificationWeather     NotificationType = "weather"
	NotificationSystem      NotificationType = "system"
)

// NotificationPriority enumerates ranking levels for notifications.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// ValidNotificationType reports whether the type belongs to the declared enum.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationVaccination, NotificationHealthCheck, NotificationFeed, NotificationWeather, NotificationSystem:
		return true
	}
	return false
}

// ValidPriority reports whether the priority belongs to the declared enum.
func ValidPriority(p NotificationPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Notification is a persisted, user-created notification. The only permitted
// mutation after creation is the read-flag transition.
type Notification struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FarmID    string               `bson:"farm_id" json:"farmId"`
	Type      NotificationType     `bson:"type" json:"type"`
	Message   string               `bson:"message" json:"message"`
	FlockID   *primitive.ObjectID  `bson:"flock_id,omitempty" json:"flockId,omitempty"`
	DueDate   time.Time            `bson:"due_date" json:"dueDate"`
	IsRead    bool                 `bson:"is_read" json:"isRead"`
	Priority  NotificationPriority `bson:"priority" json:"priority"`
	CreatedAt time.Time            `bson:"created_at" json:"createdAt"`
}

// NotificationItem is the read-side shape returned to callers. It covers both
// persisted notifications and the synthetic ones derived per request; derived
// items carry an empty ID and can never be marked as read.
type NotificationItem struct {
	ID       string               `json:"id,omitempty"`
	Type     NotificationType     `json:"type"`
	Message  string               `json:"message"`
	Date     time.Time            `json:"date"`
	Priority NotificationPriority `json:"priority"`
	IsRead   bool                 `json:"isRead"`
}
