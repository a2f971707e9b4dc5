package entity

import "github.com/google/uuid"

type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobAssigned   JobStatus = "assigned"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

type Job struct {
	Base
	ClientID          uuid.UUID  `db:"client_id"`
	Title             string     `db:"title"`
	Description       string     `db:"description"`
	Location          string     `db:"location"`
	Budget            *float64   `db:"budget"`
	Status            JobStatus  `db:"status"`
	AssignedArtisanID *uuid.UUID `db:"assigned_artisan_id"`
	RequiredSkills    []string
}

type JobFilter struct {
	Status   JobStatus
	ClientID *uuid.UUID
}
