package entity

import "github.com/google/uuid"

// ArtisanProfile exists only for artisan accounts and shares their id.
type ArtisanProfile struct {
	UserID          uuid.UUID `db:"user_id"`
	Bio             string    `db:"bio"`
	YearsExperience int       `db:"years_experience"`
	AverageRating   float64   `db:"average_rating"`
	TotalReviews    int       `db:"total_reviews"`
	IsAvailable     bool      `db:"is_available"`
}

// Artisan is an artisan account joined with its profile and skill names.
type Artisan struct {
	User
	Profile ArtisanProfile
	Skills  []string
}

type ArtisanFilter struct {
	Skill     string
	Location  string
	Available *bool
}
