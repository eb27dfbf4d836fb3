package service

import (
	"context"
	"errors"

	"prompthub/internal/api/models"
	"prompthub/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrRecipientNotFound    = errors.New("recipient not found")
)

type NotificationService interface {
	Create(ctx context.Context, recipientID, notificationType, content string, senderID *string, link string) (*models.Notification, error)
	List(ctx context.Context, userID string, offset, limit int, unreadOnly bool) ([]models.Notification, error)
	GetByID(ctx context.Context, notificationID int64) (*models.Notification, error)
	MarkAsRead(ctx context.Context, notificationID int64) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, notificationID int64) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type notificationService struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
}

func NewNotificationService(repo repository.NotificationRepository, userRepo repository.UserRepository) NotificationService {
	return &notificationService{repo: repo, userRepo: userRepo}
}

// Create persists a notification for the recipient. The recipient must exist;
// the sender is optional (system notifications carry none).
func (s *notificationService) Create(ctx context.Context, recipientID, notificationType, content string, senderID *string, link string) (*models.Notification, error) {
	if _, err := s.userRepo.FindByID(recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	notification := &models.Notification{
		UserID:   recipientID,
		SenderID: senderID,
		Type:     notificationType,
		Content:  content,
		Link:     link,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

func (s *notificationService) List(ctx context.Context, userID string, offset, limit int, unreadOnly bool) ([]models.Notification, error) {
	return s.repo.ListByUser(ctx, userID, offset, limit, unreadOnly)
}

func (s *notificationService) GetByID(ctx context.Context, notificationID int64) (*models.Notification, error) {
	notification, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return notification, nil
}

// MarkAsRead is idempotent: marking an already-read notification succeeds.
func (s *notificationService) MarkAsRead(ctx context.Context, notificationID int64) error {
	return s.repo.MarkAsRead(ctx, notificationID)
}

// MarkAllAsRead succeeds even when the user has no unread notifications.
func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) Delete(ctx context.Context, notificationID int64) error {
	err := s.repo.Delete(ctx, notificationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}
