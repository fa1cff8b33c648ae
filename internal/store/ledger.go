package store

import (
	"context"
	"fmt"

	"mill-maintenance-backend/internal/model"
)

func ledgerTable(kind model.LedgerKind) (string, error) {
	switch kind {
	case model.LedgerProduction:
		return "production_records", nil
	case model.LedgerDispatch:
		return "dispatch_records", nil
	case model.LedgerStock:
		return "stock_records", nil
	}
	return "", fmt.Errorf("unknown ledger %q", kind)
}

// ListLedger returns every entry of a ledger, newest date first.
func (s *gormStore) ListLedger(ctx context.Context, kind model.LedgerKind) ([]model.LedgerEntry, error) {
	table, err := ledgerTable(kind)
	if err != nil {
		return nil, err
	}
	entries := []model.LedgerEntry{}
	if err := s.db.WithContext(ctx).Table(table).
		Order("date DESC").Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return entries, nil
}

// CreateLedger appends one entry; entries for the same date accumulate.
func (s *gormStore) CreateLedger(ctx context.Context, kind model.LedgerKind, entry *model.LedgerEntry) error {
	table, err := ledgerTable(kind)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Table(table).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create %s entry: %w", kind, err)
	}
	return nil
}

// DeleteLedger removes a mistaken entry.
func (s *gormStore) DeleteLedger(ctx context.Context, kind model.LedgerKind, id string) error {
	table, err := ledgerTable(kind)
	if err != nil {
		return err
	}
	return deleteByID(s.db.WithContext(ctx).Table(table), &model.LedgerEntry{}, string(kind)+" entry", id)
}
