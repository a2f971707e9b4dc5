package wire

import (
	"jua-kali/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures the caller's own account routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	g guards,
) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(g.authenticate).Route("/api/users/me", func(r chi.Router) {
		r.Get("/", userHandler.GetProfile)    // GET /api/users/me
		r.Put("/", userHandler.UpdateProfile) // PUT /api/users/me
	})
}
