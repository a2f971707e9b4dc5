package response

import (
	"time"

	"jua-kali/internal/data/entity"
)

type NotificationResponse struct {
	ID        string                  `json:"id"`
	Message   string                  `json:"message"`
	Type      entity.NotificationType `json:"notification_type"`
	EntityID  *string                 `json:"entity_id"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.EntityID != nil {
		id := n.EntityID.String()
		resp.EntityID = &id
	}
	return resp
}
