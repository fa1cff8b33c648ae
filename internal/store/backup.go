package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mill-maintenance-backend/internal/model"
)

// SnapshotVersion is the format version written into every backup.
const SnapshotVersion = "1.0"

const restoreBatchSize = 200

// Snapshot is the backup file format shared by export and restore.
type Snapshot struct {
	Timestamp time.Time    `json:"timestamp"`
	Version   string       `json:"version"`
	Data      SnapshotData `json:"data"`
}

// SnapshotData carries the full wire and equipment tables.
type SnapshotData struct {
	WireRecords      []model.WireRecord      `json:"wireRecords"`
	EquipmentRecords []model.EquipmentRecord `json:"equipmentRecords"`
}

// Validate checks the top-level shape. Both record lists must be present;
// an empty list is a valid snapshot of an empty table.
func (s *Snapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidSnapshot)
	}
	if s.Data.WireRecords == nil {
		return fmt.Errorf("%w: data.wireRecords is missing", ErrInvalidSnapshot)
	}
	if s.Data.EquipmentRecords == nil {
		return fmt.Errorf("%w: data.equipmentRecords is missing", ErrInvalidSnapshot)
	}
	return nil
}

// Count is the total number of records in the snapshot.
func (s *Snapshot) Count() int {
	return len(s.Data.WireRecords) + len(s.Data.EquipmentRecords)
}

// Export reads both tables in one transaction and records note alongside.
// An empty note message is filled in with the exported record counts.
func (s *gormStore) Export(ctx context.Context, note *model.Notification) (*Snapshot, error) {
	snap := &Snapshot{
		Timestamp: time.Now().UTC(),
		Version:   SnapshotVersion,
		Data: SnapshotData{
			WireRecords:      []model.WireRecord{},
			EquipmentRecords: []model.EquipmentRecord{},
		},
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("created_at DESC").Find(&snap.Data.WireRecords).Error; err != nil {
			return fmt.Errorf("failed to read wire records: %w", err)
		}
		if err := tx.Order("created_at DESC").Find(&snap.Data.EquipmentRecords).Error; err != nil {
			return fmt.Errorf("failed to read equipment records: %w", err)
		}
		if note != nil && note.Message == "" {
			note.Message = fmt.Sprintf("Exported %d wire records and %d equipment records",
				len(snap.Data.WireRecords), len(snap.Data.EquipmentRecords))
		}
		return createNote(tx, note)
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Restore replaces both tables with the snapshot contents in a single
// transaction. Ids and timestamps are kept as they appear in the snapshot.
func (s *gormStore) Restore(ctx context.Context, snap *Snapshot, note *model.Notification) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.WireRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear wire records: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&model.EquipmentRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear equipment records: %w", err)
		}
		if len(snap.Data.WireRecords) > 0 {
			if err := tx.CreateInBatches(&snap.Data.WireRecords, restoreBatchSize).Error; err != nil {
				return fmt.Errorf("failed to restore wire records: %w", err)
			}
		}
		if len(snap.Data.EquipmentRecords) > 0 {
			if err := tx.CreateInBatches(&snap.Data.EquipmentRecords, restoreBatchSize).Error; err != nil {
				return fmt.Errorf("failed to restore equipment records: %w", err)
			}
		}
		return createNote(tx, note)
	})
}
