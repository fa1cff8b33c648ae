package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mill-maintenance-backend/internal/model"
)

// ListEquipment returns all equipment records, newest first.
func (s *gormStore) ListEquipment(ctx context.Context) ([]model.EquipmentRecord, error) {
	records := []model.EquipmentRecord{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list equipment records: %w", err)
	}
	return records, nil
}

// GetEquipment loads one equipment record.
func (s *gormStore) GetEquipment(ctx context.Context, id string) (*model.EquipmentRecord, error) {
	var e model.EquipmentRecord
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, notFound(err, "equipment record", id)
	}
	return &e, nil
}

// CreateEquipment inserts the record and its feed notification in one transaction.
func (s *gormStore) CreateEquipment(ctx context.Context, e *model.EquipmentRecord, note *model.Notification) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return fmt.Errorf("failed to create equipment record: %w", err)
		}
		return createNote(tx, note)
	})
}

// UpdateEquipment overwrites every editable field of an existing record.
func (s *gormStore) UpdateEquipment(ctx context.Context, e *model.EquipmentRecord) error {
	res := s.db.WithContext(ctx).Model(&model.EquipmentRecord{}).Where("id = ?", e.ID).
		Select("group_name", "equipment_name", "downtime_minutes", "total_production",
			"change_date", "production_impact", "downtime_category", "maintenance_cost",
			"spare_part_used", "technician_name", "remark", "updated_at").
		Updates(e)
	if res.Error != nil {
		return fmt.Errorf("failed to update equipment record %s: %w", e.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("equipment record %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

// DeleteEquipment removes one equipment record.
func (s *gormStore) DeleteEquipment(ctx context.Context, id string) error {
	return deleteByID(s.db.WithContext(ctx), &model.EquipmentRecord{}, "equipment record", id)
}
