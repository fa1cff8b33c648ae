package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WireRecord logs the installation and, later, the removal of a machine wire.
// A nil ProductionAtRemoval marks a wire that is still running.
type WireRecord struct {
	ID                       string              `gorm:"primaryKey;size:36" json:"id"`
	MachineName              string              `gorm:"size:128;not null;index" json:"machineName"`
	WireType                 string              `gorm:"size:128;not null" json:"wireType"`
	PartyName                string              `gorm:"size:128;not null" json:"partyName"`
	ProductionAtInstallation int64               `gorm:"not null" json:"productionAtInstallation"`
	ProductionAtRemoval      *int64              `json:"productionAtRemoval"`
	WireLifeMT               *int64              `gorm:"column:wire_life_mt" json:"wireLifeMT"`
	ExpectedLifeMT           *int64              `gorm:"column:expected_life_mt" json:"expectedLifeMT"`
	WireCost                 decimal.NullDecimal `gorm:"type:numeric" json:"wireCost"`
	ChangeDate               Date                `gorm:"type:date;not null;index" json:"changeDate"`
	Remark                   *string             `gorm:"size:512" json:"remark"`
	CreatedAt                time.Time           `gorm:"not null;index" json:"createdAt"`
	UpdatedAt                time.Time           `json:"updatedAt"`
}

func (w *WireRecord) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// Active reports whether the wire has not been removed yet.
func (w *WireRecord) Active() bool {
	return w.ProductionAtRemoval == nil
}

// ComputeLife derives the wire life in MT. An explicit value wins; otherwise
// life is removal minus installation when the removal reading is known and
// not below the installation reading.
func ComputeLife(install int64, removal, explicit *int64) *int64 {
	if explicit != nil {
		v := *explicit
		return &v
	}
	if removal == nil || *removal < install {
		return nil
	}
	life := *removal - install
	return &life
}
