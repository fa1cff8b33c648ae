package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mill-maintenance-backend/internal/model"
)

func (s *gormStore) ListConfig(ctx context.Context) ([]model.SystemConfig, error) {
	rows := []model.SystemConfig{}
	if err := s.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list system config: %w", err)
	}
	return rows, nil
}

// GetConfig returns the value of key and whether it exists.
func (s *gormStore) GetConfig(ctx context.Context, key string) (string, bool, error) {
	var row model.SystemConfig
	err := s.db.WithContext(ctx).Where(map[string]any{"key": key}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read config %q: %w", key, err)
	}
	return row.Value, true, nil
}

// UpsertConfig inserts key or overwrites its value.
func (s *gormStore) UpsertConfig(ctx context.Context, key, value string) (*model.SystemConfig, error) {
	row := model.SystemConfig{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert config %q: %w", key, err)
	}
	return &row, nil
}

// SeedConfig inserts defaults for keys that do not exist yet.
func (s *gormStore) SeedConfig(ctx context.Context, defaults map[string]string) error {
	if len(defaults) == 0 {
		return nil
	}
	rows := make([]model.SystemConfig, 0, len(defaults))
	for k, v := range defaults {
		rows = append(rows, model.SystemConfig{Key: k, Value: v})
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed system config: %w", err)
	}
	return nil
}
