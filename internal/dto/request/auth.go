package request

import (
	"strings"

	"jua-kali/pkg/utils"
)

type RegisterRequest struct {
	FullName        string   `json:"full_name" validate:"required,max=255"`
	Email           string   `json:"email" validate:"required,email,max=255"`
	PhoneNumber     string   `json:"phone_number" validate:"required,min=10,max=20"`
	Password        string   `json:"password" validate:"required,min=6,max=72"`
	Role            string   `json:"role" validate:"required,oneof=client artisan"`
	Location        string   `json:"location" validate:"max=255"`
	Bio             string   `json:"bio"`
	YearsExperience int      `json:"years_experience" validate:"gte=0"`
	Skills          []string `json:"skills" validate:"dive,required,max=100"`
}

// Normalize trims the free-text fields so blank values fail validation.
func (r *RegisterRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = utils.NormalizeEmail(r.Email)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Location = strings.TrimSpace(r.Location)
	r.Bio = strings.TrimSpace(r.Bio)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
