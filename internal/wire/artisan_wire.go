package wire

import (
	"jua-kali/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireArtisan(
	r chi.Router,
	skillHandler *adaptor.SkillHandler,
	artisanHandler *adaptor.ArtisanHandler,
	reviewHandler *adaptor.ReviewHandler,
	g guards,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/skills", skillHandler.List)

	r.Route("/api/artisans", func(r chi.Router) {
		r.Get("/", artisanHandler.List) // GET /api/artisans?skill=&location=&available=

		// ==================== ARTISAN ROUTES ====================
		// Registered before /{id} so "me" is never read as an id.
		r.With(g.authenticate, g.artisan).Put("/me", artisanHandler.UpdateMe)

		r.Get("/{id}", artisanHandler.Get)
		r.Get("/{id}/reviews", reviewHandler.ListByArtisan)
	})
}
