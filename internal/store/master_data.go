package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mill-maintenance-backend/internal/model"
)

// MasterDataPatch holds the optional fields of a master-data edit.
type MasterDataPatch struct {
	Value    *string
	IsActive *bool
}

// ListMasterData returns the values of one category, or of all when category is empty.
func (s *gormStore) ListMasterData(ctx context.Context, category model.MasterCategory) ([]model.MasterData, error) {
	q := s.db.WithContext(ctx).Order("category ASC").Order("value ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	items := []model.MasterData{}
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list master data: %w", err)
	}
	return items, nil
}

// CreateMasterData inserts one dropdown value.
func (s *gormStore) CreateMasterData(ctx context.Context, m *model.MasterData) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create master data: %w", err)
	}
	return nil
}

// PatchMasterData changes the value and/or the active flag and returns the row.
func (s *gormStore) PatchMasterData(ctx context.Context, id string, patch MasterDataPatch) (*model.MasterData, error) {
	var item model.MasterData
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
			return notFound(err, "master data", id)
		}
		updates := map[string]any{}
		if patch.Value != nil {
			updates["value"] = *patch.Value
		}
		if patch.IsActive != nil {
			updates["is_active"] = *patch.IsActive
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&item).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update master data %s: %w", id, err)
		}
		return tx.Where("id = ?", id).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteMasterData removes one dropdown value.
func (s *gormStore) DeleteMasterData(ctx context.Context, id string) error {
	return deleteByID(s.db.WithContext(ctx), &model.MasterData{}, "master data", id)
}
