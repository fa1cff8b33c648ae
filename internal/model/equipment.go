package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductionImpact records whether an equipment event affected output.
type ProductionImpact string

const (
	ImpactYes    ProductionImpact = "Yes"
	ImpactNo     ProductionImpact = "No"
	ImpactRemark ProductionImpact = "Remark"
)

// ParseProductionImpact matches s case-insensitively; empty means No.
func ParseProductionImpact(s string) (ProductionImpact, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no":
		return ImpactNo, nil
	case "yes":
		return ImpactYes, nil
	case "remark":
		return ImpactRemark, nil
	}
	return "", fmt.Errorf("productionImpact must be Yes, No or Remark, got %q", s)
}

// EquipmentRecord logs a maintenance or replacement event on a piece of equipment.
type EquipmentRecord struct {
	ID               string              `gorm:"primaryKey;size:36" json:"id"`
	GroupName        string              `gorm:"size:128;not null;index" json:"groupName"`
	EquipmentName    string              `gorm:"size:128;not null" json:"equipmentName"`
	DowntimeMinutes  int64               `gorm:"not null;default:0" json:"downtimeMinutes"`
	TotalProduction  int64               `gorm:"not null;default:0" json:"totalProduction"`
	ChangeDate       Date                `gorm:"type:date;not null;index" json:"changeDate"`
	ProductionImpact ProductionImpact    `gorm:"size:16;not null;default:'No'" json:"productionImpact"`
	DowntimeCategory *string             `gorm:"size:64" json:"downtimeCategory"`
	MaintenanceCost  decimal.NullDecimal `gorm:"type:numeric" json:"maintenanceCost"`
	SparePartUsed    *string             `gorm:"size:256" json:"sparePartUsed"`
	TechnicianName   *string             `gorm:"size:128" json:"technicianName"`
	Remark           *string             `gorm:"size:512" json:"remark"`
	CreatedAt        time.Time           `gorm:"not null;index" json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

func (e *EquipmentRecord) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
