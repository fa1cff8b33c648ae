package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mill-maintenance-backend/internal/model"
)

// Summary aggregates the dashboard headline figures.
type Summary struct {
	From              *model.Date        `json:"from"`
	To                *model.Date        `json:"to"`
	TotalProduction   decimal.Decimal    `json:"totalProduction"`
	TotalDispatch     decimal.Decimal    `json:"totalDispatch"`
	LatestStock       *model.LedgerEntry `json:"latestStock"`
	ActiveWires       int64              `json:"activeWires"`
	EquipmentEvents   int64              `json:"equipmentEvents"`
	DowntimeMinutes   int64              `json:"downtimeMinutes"`
	MachineStatus     string             `json:"machineStatus"`
	LowStockThreshold *decimal.Decimal   `json:"lowStockThreshold"`
	LowStock          bool               `json:"lowStock"`
}

// Summary computes the dashboard figures, optionally limited to a date range.
func (s *gormStore) Summary(ctx context.Context, from, to *model.Date) (*Summary, error) {
	db := s.db.WithContext(ctx)
	sum := &Summary{From: from, To: to}

	within := func(q *gorm.DB, column string) *gorm.DB {
		if from != nil {
			q = q.Where(column+" >= ?", *from)
		}
		if to != nil {
			q = q.Where(column+" <= ?", *to)
		}
		return q
	}

	var err error
	if sum.TotalProduction, err = sumAmount(within(db.Table("production_records"), "date")); err != nil {
		return nil, fmt.Errorf("failed to total production: %w", err)
	}
	if sum.TotalDispatch, err = sumAmount(within(db.Table("dispatch_records"), "date")); err != nil {
		return nil, fmt.Errorf("failed to total dispatch: %w", err)
	}

	var latest model.LedgerEntry
	err = within(db.Table("stock_records"), "date").Order("date DESC").Order("created_at DESC").Take(&latest).Error
	switch {
	case err == nil:
		sum.LatestStock = &latest
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to read latest stock: %w", err)
	}

	if err := db.Model(&model.WireRecord{}).Where("production_at_removal IS NULL").Count(&sum.ActiveWires).Error; err != nil {
		return nil, fmt.Errorf("failed to count active wires: %w", err)
	}
	if err := within(db.Model(&model.EquipmentRecord{}), "change_date").Count(&sum.EquipmentEvents).Error; err != nil {
		return nil, fmt.Errorf("failed to count equipment events: %w", err)
	}
	if err := within(db.Model(&model.EquipmentRecord{}), "change_date").
		Select("COALESCE(SUM(downtime_minutes), 0)").Row().Scan(&sum.DowntimeMinutes); err != nil {
		return nil, fmt.Errorf("failed to total downtime: %w", err)
	}

	if status, ok, err := s.GetConfig(ctx, model.ConfigMachineStatus); err != nil {
		return nil, err
	} else if ok {
		sum.MachineStatus = status
	}
	raw, ok, err := s.GetConfig(ctx, model.ConfigLowStockThreshold)
	if err != nil {
		return nil, err
	}
	if ok {
		if threshold, err := decimal.NewFromString(raw); err == nil {
			sum.LowStockThreshold = &threshold
			sum.LowStock = sum.LatestStock != nil && sum.LatestStock.Amount.LessThan(threshold)
		}
	}
	return sum, nil
}

func sumAmount(q *gorm.DB) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := q.Select("SUM(amount)").Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
