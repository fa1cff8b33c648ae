package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MasterCategory groups the controlled vocabularies behind form dropdowns.
type MasterCategory string

const (
	CategoryMachineSection MasterCategory = "MACHINE_SECTION"
	CategoryEquipmentName  MasterCategory = "EQUIPMENT_NAME"
	CategoryWireType       MasterCategory = "WIRE_TYPE"
	CategoryPartyName      MasterCategory = "PARTY_NAME"
)

// Valid reports whether c is one of the known categories.
func (c MasterCategory) Valid() bool {
	switch c {
	case CategoryMachineSection, CategoryEquipmentName, CategoryWireType, CategoryPartyName:
		return true
	}
	return false
}

// MasterData is one dropdown value. Inactive values stay in the table but are hidden.
type MasterData struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Category  MasterCategory `gorm:"size:32;not null;index" json:"category"`
	Value     string         `gorm:"size:256;not null" json:"value"`
	IsActive  bool           `gorm:"not null" json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (m *MasterData) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
