package wire

import (
	"jua-kali/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireJob(
	r chi.Router,
	jobHandler *adaptor.JobHandler,
	g guards,
) {
	r.Route("/api/jobs", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", jobHandler.List)
		r.Get("/{id}", jobHandler.Get)

		// ==================== CLIENT ROUTES ====================
		// Ownership of the job is checked by the service.
		r.Group(func(r chi.Router) {
			r.Use(g.authenticate, g.client)

			r.Post("/", jobHandler.Create)
			r.Put("/{id}", jobHandler.Update)
			r.Delete("/{id}", jobHandler.Delete)
			r.Get("/{id}/applications", jobHandler.ListApplications)
			r.Post("/{id}/applications/{applicationID}/accept", jobHandler.AcceptApplication)
			r.Post("/{id}/complete", jobHandler.Complete)
		})

		// ==================== ARTISAN ROUTES ====================
		r.With(g.authenticate, g.artisan).Post("/{id}/apply", jobHandler.Apply)
	})

	r.With(g.authenticate, g.artisan).Get("/api/applications/me", jobHandler.MyApplications)
}
