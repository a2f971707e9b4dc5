package entity

import "github.com/google/uuid"

type NotificationType string

const (
	NotificationNewApplication      NotificationType = "new_application"
	NotificationApplicationAccepted NotificationType = "application_accepted"
	NotificationApplicationRejected NotificationType = "application_rejected"
	NotificationJobCompleted        NotificationType = "job_completed"
	NotificationNewReview           NotificationType = "new_review"
)

type Notification struct {
	BaseSimple
	UserID   uuid.UUID        `db:"user_id"`
	Message  string           `db:"message"`
	Type     NotificationType `db:"notification_type"`
	EntityID *uuid.UUID       `db:"entity_id"`
	IsRead   bool             `db:"is_read"`
}
