package wire

import (
	"jua-kali/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	g guards,
) {
	// ==================== CLIENT ROUTES ====================
	// POST /api/reviews - review a completed job you own
	// Artisan reviews are listed under /api/artisans/{id}/reviews.
	r.With(g.authenticate, g.client).Post("/api/reviews", reviewHandler.Create)
}
