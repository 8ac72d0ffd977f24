package service

import (
	"context"
	"fmt"

	"github.com/poketrade/marketplace-api/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) (domain.Notification, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkAllRead(ctx context.Context, userID uint) error
}

type NotificationService struct {
	repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

func (s *NotificationService) Notify(ctx context.Context, userID uint, message, link string) (domain.Notification, error) {
	created, err := s.repo.Create(ctx, domain.Notification{
		UserID:  userID,
		Message: message,
		Link:    link,
	})
	if err != nil {
		return domain.Notification{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID uint) ([]domain.Notification, int64, error) {
	notifications, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.CountUnread -> %w", err)
	}

	return notifications, unread, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("s.repo.MarkAllRead -> %w", err)
	}

	return nil
}
