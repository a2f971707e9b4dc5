package request

type MarkNotificationRequest struct {
	IsRead *bool `json:"is_read" validate:"required"`
}

type NotificationListRequest struct {
	PaginatedRequest
	IsRead *bool
}
