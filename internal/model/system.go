package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known SystemConfig keys.
const (
	ConfigMachineStatus     = "machineStatus"
	ConfigLowStockThreshold = "lowStockThreshold"
)

// SystemConfig is a single key/value setting.
type SystemConfig struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Value     string    `gorm:"size:1024;not null" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SheetLink is a labelled shortcut to an external spreadsheet.
type SheetLink struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Label     string    `gorm:"size:256;not null" json:"label"`
	URL       string    `gorm:"column:url;size:2048;not null" json:"url"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

func (s *SheetLink) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
