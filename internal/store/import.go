package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mill-maintenance-backend/internal/bulkimport"
)

const importBatchSize = 500

// ImportBatch writes a bulk-import batch with one batch insert per destination
// table, all inside one transaction.
func (s *gormStore) ImportBatch(ctx context.Context, b *bulkimport.Batch) (bulkimport.Counts, error) {
	if b.Empty() {
		return bulkimport.Counts{}, nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(b.Production) > 0 {
			if err := tx.CreateInBatches(&b.Production, importBatchSize).Error; err != nil {
				return fmt.Errorf("failed to import production: %w", err)
			}
		}
		if len(b.Dispatch) > 0 {
			if err := tx.CreateInBatches(&b.Dispatch, importBatchSize).Error; err != nil {
				return fmt.Errorf("failed to import dispatch: %w", err)
			}
		}
		if len(b.Stock) > 0 {
			if err := tx.CreateInBatches(&b.Stock, importBatchSize).Error; err != nil {
				return fmt.Errorf("failed to import stock: %w", err)
			}
		}
		if len(b.Wire) > 0 {
			if err := tx.CreateInBatches(&b.Wire, importBatchSize).Error; err != nil {
				return fmt.Errorf("failed to import wire records: %w", err)
			}
		}
		if len(b.Equipment) > 0 {
			if err := tx.CreateInBatches(&b.Equipment, importBatchSize).Error; err != nil {
				return fmt.Errorf("failed to import equipment records: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return bulkimport.Counts{}, err
	}
	return b.Counts(), nil
}
