package request

import (
	"strings"

	"jua-kali/pkg/utils"
)

type UpdateProfileRequest struct {
	FullName    string `json:"full_name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email,max=255"`
	PhoneNumber string `json:"phone_number" validate:"required,min=10,max=20"`
	Location    string `json:"location" validate:"max=255"`
}

func (r *UpdateProfileRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = utils.NormalizeEmail(r.Email)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Location = strings.TrimSpace(r.Location)
}

type UpdateArtisanRequest struct {
	Bio             string    `json:"bio" validate:"required"`
	YearsExperience int       `json:"years_experience" validate:"gte=0"`
	IsAvailable     *bool     `json:"is_available"`
	Skills          *[]string `json:"skills" validate:"omitnil,min=1,dive,required,max=100"`
}

func (r *UpdateArtisanRequest) Normalize() {
	r.Bio = strings.TrimSpace(r.Bio)
}

type ArtisanListRequest struct {
	PaginatedRequest
	Skill     string
	Location  string
	Available *bool
}
