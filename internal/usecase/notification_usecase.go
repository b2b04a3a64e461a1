package usecase

import (
	"context"
	"time"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/internal/domain/service"
	"targ/pkg/errors"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	pusher           service.Pusher
	now              func() time.Time
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository, pusher service.Pusher) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		pusher:           pusher,
		now:              time.Now,
	}
}

// Notify persists the notification, then pushes it to the user's open sockets.
func (uc *NotificationUseCase) Notify(ctx context.Context, n *entity.Notification) error {
	if n.UserID == "" {
		return errors.BadRequest("Notification has no recipient", nil)
	}
	n.Read = false
	if n.CreatedAt.IsZero() {
		n.CreatedAt = uc.now()
	}

	if err := uc.notificationRepo.Create(ctx, n); err != nil {
		return err
	}

	if uc.pusher != nil {
		uc.pusher.Push(n.UserID, service.PushNotificationNew, n)
	}
	return nil
}

func (uc *NotificationUseCase) List(ctx context.Context, userID string, unreadOnly bool, page, pageSize int) ([]*entity.Notification, int64, error) {
	offset := (page - 1) * pageSize
	return uc.notificationRepo.ListByUser(ctx, userID, unreadOnly, pageSize, offset)
}

func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

func (uc *NotificationUseCase) owned(ctx context.Context, userID, id string) (*entity.Notification, error) {
	n, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, errors.Forbidden("You can only manage your own notifications", nil)
	}
	return n, nil
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	n, err := uc.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if n.Read {
		return nil
	}
	return uc.notificationRepo.MarkRead(ctx, id)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}

func (uc *NotificationUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	return uc.notificationRepo.Delete(ctx, id)
}
