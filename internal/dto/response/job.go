package response

import (
	"time"

	"jua-kali/internal/data/entity"
)

type JobResponse struct {
	ID                string           `json:"id"`
	ClientID          string           `json:"client_id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Location          string           `json:"location"`
	Budget            *float64         `json:"budget"`
	Status            entity.JobStatus `json:"status"`
	AssignedArtisanID *string          `json:"assigned_artisan_id"`
	RequiredSkills    []string         `json:"required_skills"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type ApplicationResponse struct {
	ID        string                   `json:"id"`
	JobID     string                   `json:"job_id"`
	ArtisanID string                   `json:"artisan_id"`
	BidAmount *float64                 `json:"bid_amount"`
	Message   string                   `json:"message"`
	Status    entity.ApplicationStatus `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
}

func JobToResponse(job *entity.Job) JobResponse {
	resp := JobResponse{
		ID:             job.ID.String(),
		ClientID:       job.ClientID.String(),
		Title:          job.Title,
		Description:    job.Description,
		Location:       job.Location,
		Budget:         job.Budget,
		Status:         job.Status,
		RequiredSkills: job.RequiredSkills,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
	if resp.RequiredSkills == nil {
		resp.RequiredSkills = []string{}
	}
	if job.AssignedArtisanID != nil {
		id := job.AssignedArtisanID.String()
		resp.AssignedArtisanID = &id
	}
	return resp
}

func ApplicationToResponse(a *entity.JobApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID.String(),
		JobID:     a.JobID.String(),
		ArtisanID: a.ArtisanID.String(),
		BidAmount: a.BidAmount,
		Message:   a.Message,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}
