package request

import "strings"

type JobRequest struct {
	Title          string   `json:"title" validate:"required,max=255"`
	Description    string   `json:"description" validate:"required"`
	Location       string   `json:"location" validate:"required,max=255"`
	Budget         *float64 `json:"budget" validate:"omitnil,gte=0"`
	RequiredSkills []string `json:"required_skills" validate:"dive,required,max=100"`
}

func (r *JobRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
}

type UpdateJobRequest struct {
	JobRequest
	Status string `json:"status" validate:"omitempty,oneof=open assigned in_progress completed cancelled"`
}

type JobListRequest struct {
	PaginatedRequest
	Status string `validate:"omitempty,oneof=open assigned in_progress completed cancelled"`
}

type ApplyRequest struct {
	BidAmount *float64 `json:"bid_amount" validate:"omitnil,gte=0"`
	Message   string   `json:"message" validate:"max=2000"`
}
