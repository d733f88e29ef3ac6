package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Kruzk02/grocery-store-api/internal/domain"
)

type NotificationRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Notification, error)
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id int) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id int) error
}

type NotificationService struct {
	notifications NotificationRepository
	logger        *zap.Logger
}

func NewNotificationService(notifications NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

func (s *NotificationService) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	if n.Type == "" {
		n.Type = domain.NotificationInfo
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Error("notification create failed", zap.String("user_id", n.UserID), zap.Error(err))
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) FindByUserID(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id int) (*domain.Notification, error) {
	if err := s.notifications.MarkAsRead(ctx, id); err != nil {
		return nil, err
	}
	return s.notifications.GetByID(ctx, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID string) ([]domain.Notification, error) {
	if err := s.notifications.MarkAllAsRead(ctx, userID); err != nil {
		return nil, err
	}
	return s.notifications.ListByUser(ctx, userID)
}

func (s *NotificationService) DeleteByID(ctx context.Context, id int) error {
	if _, err := s.notifications.GetByID(ctx, id); err != nil {
		return err
	}
	return s.notifications.Delete(ctx, id)
}
