package response

import (
	"jua-kali/internal/data/entity"
)

type SkillResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ArtisanResponse struct {
	ID              string   `json:"id"`
	FullName        string   `json:"full_name"`
	Location        string   `json:"location"`
	Bio             string   `json:"bio"`
	YearsExperience int      `json:"years_experience"`
	AverageRating   float64  `json:"average_rating"`
	TotalReviews    int      `json:"total_reviews"`
	IsAvailable     bool     `json:"is_available"`
	Skills          []string `json:"skills"`
}

func SkillToResponse(skill entity.Skill) SkillResponse {
	return SkillResponse{ID: skill.ID.String(), Name: skill.Name}
}

// ArtisanToResponse omits contact details; those are only shown to the
// account owner through /api/users/me.
func ArtisanToResponse(a *entity.Artisan) ArtisanResponse {
	skills := a.Skills
	if skills == nil {
		skills = []string{}
	}
	return ArtisanResponse{
		ID:              a.ID.String(),
		FullName:        a.FullName,
		Location:        a.Location,
		Bio:             a.Profile.Bio,
		YearsExperience: a.Profile.YearsExperience,
		AverageRating:   a.Profile.AverageRating,
		TotalReviews:    a.Profile.TotalReviews,
		IsAvailable:     a.Profile.IsAvailable,
		Skills:          skills,
	}
}
