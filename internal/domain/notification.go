package domain

import (
	"context"
	"errors"
	"time"

	"github.com/pulsefeed/backend/internal/model"
	"github.com/pulsefeed/backend/internal/repository"
	"github.com/pulsefeed/backend/pkg/errorx"
	"github.com/pulsefeed/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationDomain interface {
	GetMyNotifications(ctx context.Context, req *model.GetMyNotificationsRequest) (*model.GetMyNotificationsResponse, error)
	MarkRead(ctx context.Context, req *model.MarkNotificationReadRequest) (*model.MarkNotificationReadResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationDomain(notificationRepo repository.NotificationRepository) *notificationDomain {
	return &notificationDomain{notificationRepo: notificationRepo}
}

func (d *notificationDomain) GetMyNotifications(
	ctx context.Context, req *model.GetMyNotificationsRequest,
) (*model.GetMyNotificationsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)",
			xcontext.Configs(ctx).ApiServer.MaxLimit)
	}

	notifications, err := d.notificationRepo.GetListByUserID(ctx, userID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetMyNotificationsResponse{Notifications: []model.Notification{}}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, model.Notification{
			ID:        n.ID,
			Type:      string(n.Type),
			Message:   n.Message,
			IsRead:    n.IsRead,
			Data:      n.Data,
			CreatedAt: n.CreatedAt.Format(time.RFC3339Nano),
		})
	}

	return resp, nil
}

func (d *notificationDomain) MarkRead(
	ctx context.Context, req *model.MarkNotificationReadRequest,
) (*model.MarkNotificationReadResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty notification id")
	}

	if err := d.notificationRepo.MarkRead(ctx, req.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found notification")
		}

		xcontext.Logger(ctx).Errorf("Cannot mark notification as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkNotificationReadResponse{}, nil
}
