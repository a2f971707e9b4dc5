package wire

import (
	"jua-kali/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	userHandler *adaptor.UserHandler,
	g guards,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)

	// Session reads the Authorization header itself; a missing or bad token
	// is an answer here, not an error.
	r.Get("/api/auth/session", authHandler.Session)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.authenticate)

		r.Post("/api/auth/logout", authHandler.Logout)
		r.Get("/api/auth/me", userHandler.GetProfile)
	})
}
