package services

import (
	"context"

	"rentedBack/internal/models"
)

type NotificationService struct {
	Notifications NotificationStore
}

func (s *NotificationService) List(ctx context.Context, userID int) ([]models.Notification, error) {
	return s.Notifications.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID int) error {
	n, err := s.Notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return models.ErrNotOwner
	}
	return s.Notifications.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) error {
	return s.Notifications.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id, userID int) error {
	n, err := s.Notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return models.ErrNotOwner
	}
	return s.Notifications.Delete(ctx, id)
}

func (s *NotificationService) RegisterDeviceToken(ctx context.Context, userID int, req models.RegisterDeviceTokenRequest) error {
	return s.Notifications.RegisterDeviceToken(ctx, models.DeviceToken{
		UserID:   userID,
		Token:    req.Token,
		Platform: req.Platform,
	})
}
