package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerKind names one of the three append-only daily ledgers.
type LedgerKind string

const (
	LedgerProduction LedgerKind = "production"
	LedgerDispatch   LedgerKind = "dispatch"
	LedgerStock      LedgerKind = "stock"
)

// LedgerEntry is the shared shape of production, dispatch and stock rows.
// Several entries for the same date accumulate; nothing is keyed by day.
type LedgerEntry struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	Date      Date            `gorm:"type:date;not null;index" json:"date"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"amount"`
	Remark    *string         `gorm:"size:512" json:"remark"`
	CreatedAt time.Time       `gorm:"not null" json:"createdAt"`
}

func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ProductionRecord is a paper production ledger entry in MT.
type ProductionRecord struct {
	LedgerEntry
}

// DispatchRecord is a dispatched tonnage ledger entry.
type DispatchRecord struct {
	LedgerEntry
}

// StockRecord is a stock-on-hand ledger entry.
type StockRecord struct {
	LedgerEntry
}
