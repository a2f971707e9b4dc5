package usecase

import (
	"context"

	"jua-kali/internal/data/repository"
	"jua-kali/internal/dto/request"
	"jua-kali/internal/dto/response"
	"jua-kali/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, req *request.NotificationListRequest) (*response.PaginatedResponse[response.NotificationResponse], error)
	MarkRead(ctx context.Context, userID uuid.UUID, notificationID string, req *request.MarkNotificationRequest) (*response.NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	log              *zap.Logger
}

func NewNotificationService(notificationRepo repository.NotificationRepository, log *zap.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		log:              log.With(zap.String("service", "notification")),
	}
}

func (ns *notificationService) List(ctx context.Context, userID uuid.UUID, req *request.NotificationListRequest) (*response.PaginatedResponse[response.NotificationResponse], error) {
	notifications, err := ns.notificationRepo.FindByUserID(ctx, userID, req.IsRead, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	total, err := ns.notificationRepo.CountByUserID(ctx, userID, req.IsRead)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	data := make([]response.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		data = append(data, response.NotificationToResponse(n))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (ns *notificationService) MarkRead(ctx context.Context, userID uuid.UUID, notificationID string, req *request.MarkNotificationRequest) (*response.NotificationResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	id, err := parseID(notificationID, "notification_id")
	if err != nil {
		return nil, err
	}

	notification, err := ns.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if notification == nil {
		return nil, apperr.NotFound("notification not found")
	}
	if notification.UserID != userID {
		return nil, apperr.Forbidden("not your notification")
	}

	if err := ns.notificationRepo.SetRead(ctx, id, *req.IsRead); err != nil {
		return nil, apperr.Internal(err)
	}
	notification.IsRead = *req.IsRead

	resp := response.NotificationToResponse(notification)
	return &resp, nil
}

func (ns *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := ns.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, apperr.Internal(err)
	}

	ns.log.Info("Notifications marked read",
		zap.String("user_id", userID.String()),
		zap.Int64("count", count),
	)
	return count, nil
}
