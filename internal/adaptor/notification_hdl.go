package adaptor

import (
	"net/http"

	"jua-kali/internal/dto/request"
	"jua-kali/internal/usecase"
	"jua-kali/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	service usecase.NotificationService
	log     *zap.Logger
}

func NewNotificationHandler(service usecase.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log.With(zap.String("handler", "notification")),
	}
}

// List handles GET /api/notifications/me (protected)
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	req := &request.NotificationListRequest{
		PaginatedRequest: paginated(r),
		IsRead:           utils.ParseOptionalBool(r.URL.Query().Get("is_read")),
	}

	notifications, err := h.service.List(r.Context(), userID, req)
	if err != nil {
		writeError(w, h.log, err, "list notifications")
		return
	}

	utils.ResponseSuccess(w, "success", notifications)
}

// MarkRead handles PUT /api/notifications/{id}/read (owner only)
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	var req request.MarkNotificationRequest
	if !decode(w, r, &req) {
		return
	}

	notification, err := h.service.MarkRead(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "mark notification")
		return
	}

	utils.ResponseSuccess(w, "Notification updated", notification)
}

// MarkAllRead handles PUT /api/notifications/me/read-all (protected)
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	count, err := h.service.MarkAllRead(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err, "mark all notifications")
		return
	}

	utils.ResponseSuccess(w, "Notifications marked as read", map[string]int64{"updated": count})
}
