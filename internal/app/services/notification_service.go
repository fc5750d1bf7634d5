package services

import (
	"context"
	"fmt"

	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/app/repositories"
	"github.com/kaanyildiz/assignflow/internal/pkg/helpers"
)

// NotificationService defines the interface for notification queries
type NotificationService interface {
	List(ctx context.Context, userID int64, unreadOnly bool, page, pageSize int) ([]dto.NotificationResponse, *dto.PaginationInfo, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	UnreadCount(ctx context.Context, userID int64) (*dto.UnreadCountResponse, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo *repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo *repositories.NotificationRepository) NotificationService {
	return &notificationServiceImpl{notificationRepo: notificationRepo}
}

// List returns the user's notifications, newest first
func (s *notificationServiceImpl) List(ctx context.Context, userID int64, unreadOnly bool, page, pageSize int) ([]dto.NotificationResponse, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	notifications, total, err := s.notificationRepo.List(ctx, userID, unreadOnly, offset, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing notifications: %w", err)
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NewNotificationResponse(n))
	}

	pagination := helpers.NewPaginationInfo(total, page, limit)
	return responses, &pagination, nil
}

// MarkRead marks one notification as read. Marking a notification that does
// not exist or belongs to another user is a silent no-op, not an error.
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID int64) error {
	if _, err := s.notificationRepo.MarkRead(ctx, notificationID, userID); err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks all of the user's notifications as read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("error marking notifications read: %w", err)
	}
	return nil
}

// UnreadCount returns how many unread notifications the user has
func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID int64) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}
