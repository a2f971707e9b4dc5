package response

import (
	"time"

	"jua-kali/internal/data/entity"
)

type ReviewResponse struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	ClientID  string    `json:"client_id"`
	ArtisanID string    `json:"artisan_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		JobID:     review.JobID.String(),
		ClientID:  review.ClientID.String(),
		ArtisanID: review.ArtisanID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
