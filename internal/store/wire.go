package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mill-maintenance-backend/internal/model"
)

// ListWires returns all wire records, newest first.
func (s *gormStore) ListWires(ctx context.Context) ([]model.WireRecord, error) {
	wires := []model.WireRecord{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&wires).Error; err != nil {
		return nil, fmt.Errorf("failed to list wire records: %w", err)
	}
	return wires, nil
}

// GetWire loads one wire record.
func (s *gormStore) GetWire(ctx context.Context, id string) (*model.WireRecord, error) {
	var w model.WireRecord
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		return nil, notFound(err, "wire record", id)
	}
	return &w, nil
}

// CreateWire inserts the record and its feed notification in one transaction.
func (s *gormStore) CreateWire(ctx context.Context, w *model.WireRecord, note *model.Notification) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(w).Error; err != nil {
			return fmt.Errorf("failed to create wire record: %w", err)
		}
		return createNote(tx, note)
	})
}

// UpdateWire overwrites every editable field of an existing record.
func (s *gormStore) UpdateWire(ctx context.Context, w *model.WireRecord) error {
	res := s.db.WithContext(ctx).Model(&model.WireRecord{}).Where("id = ?", w.ID).
		Select("machine_name", "wire_type", "party_name", "production_at_installation",
			"production_at_removal", "wire_life_mt", "expected_life_mt", "wire_cost",
			"change_date", "remark", "updated_at").
		Updates(w)
	if res.Error != nil {
		return fmt.Errorf("failed to update wire record %s: %w", w.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wire record %s: %w", w.ID, ErrNotFound)
	}
	return nil
}

// DeleteWire removes one wire record.
func (s *gormStore) DeleteWire(ctx context.Context, id string) error {
	return deleteByID(s.db.WithContext(ctx), &model.WireRecord{}, "wire record", id)
}

func createNote(tx *gorm.DB, note *model.Notification) error {
	if note == nil {
		return nil
	}
	if err := tx.Create(note).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}
