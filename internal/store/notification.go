package store

import (
	"context"
	"fmt"

	"mill-maintenance-backend/internal/model"
)

// ListNotifications returns the most recent notifications, newest first.
func (s *gormStore) ListNotifications(ctx context.Context, limit int) ([]model.Notification, error) {
	notes := []model.Notification{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notes, nil
}

// GetNotification loads one notification.
func (s *gormStore) GetNotification(ctx context.Context, id string) (*model.Notification, error) {
	var n model.Notification
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		return nil, notFound(err, "notification", id)
	}
	return &n, nil
}

// CreateNotification appends one feed entry.
func (s *gormStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead flags every unread entry as read in one statement.
func (s *gormStore) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("is_read = ?", false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", res.Error)
	}
	return res.RowsAffected, nil
}
