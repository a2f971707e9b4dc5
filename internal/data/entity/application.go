package entity

import "github.com/google/uuid"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

type JobApplication struct {
	Base
	JobID     uuid.UUID         `db:"job_id"`
	ArtisanID uuid.UUID         `db:"artisan_id"`
	BidAmount *float64          `db:"bid_amount"`
	Message   string            `db:"message"`
	Status    ApplicationStatus `db:"status"`
}
