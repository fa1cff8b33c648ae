package store

import (
	"context"
	"fmt"

	"mill-maintenance-backend/internal/model"
)

func (s *gormStore) ListSheetLinks(ctx context.Context) ([]model.SheetLink, error) {
	links := []model.SheetLink{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to list sheet links: %w", err)
	}
	return links, nil
}

func (s *gormStore) CreateSheetLink(ctx context.Context, l *model.SheetLink) error {
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("failed to create sheet link: %w", err)
	}
	return nil
}

func (s *gormStore) DeleteSheetLink(ctx context.Context, id string) error {
	return deleteByID(s.db.WithContext(ctx), &model.SheetLink{}, "sheet link", id)
}
