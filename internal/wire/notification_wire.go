package wire

import (
	"jua-kali/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireNotification(
	r chi.Router,
	notificationHandler *adaptor.NotificationHandler,
	g guards,
) {
	// ==================== PROTECTED ROUTES ====================
	r.With(g.authenticate).Route("/api/notifications", func(r chi.Router) {
		r.Get("/me", notificationHandler.List)                 // ?is_read=&page=&per_page=
		r.Put("/me/read-all", notificationHandler.MarkAllRead) // mark every unread one
		r.Put("/{id}/read", notificationHandler.MarkRead)
	})
}
