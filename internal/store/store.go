package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mill-maintenance-backend/internal/bulkimport"
	"mill-maintenance-backend/internal/model"
)

var (
	// ErrNotFound is returned when a record with the given id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidSnapshot is returned by Restore before any write when the snapshot is malformed.
	ErrInvalidSnapshot = errors.New("invalid backup snapshot")
)

// LedgerStore reads and appends production, dispatch and stock entries.
type LedgerStore interface {
	ListLedger(ctx context.Context, kind model.LedgerKind) ([]model.LedgerEntry, error)
	CreateLedger(ctx context.Context, kind model.LedgerKind, entry *model.LedgerEntry) error
	DeleteLedger(ctx context.Context, kind model.LedgerKind, id string) error
}

// WireStore manages wire lifecycle records.
type WireStore interface {
	ListWires(ctx context.Context) ([]model.WireRecord, error)
	GetWire(ctx context.Context, id string) (*model.WireRecord, error)
	CreateWire(ctx context.Context, w *model.WireRecord, note *model.Notification) error
	UpdateWire(ctx context.Context, w *model.WireRecord) error
	DeleteWire(ctx context.Context, id string) error
}

// EquipmentStore manages equipment maintenance records.
type EquipmentStore interface {
	ListEquipment(ctx context.Context) ([]model.EquipmentRecord, error)
	GetEquipment(ctx context.Context, id string) (*model.EquipmentRecord, error)
	CreateEquipment(ctx context.Context, e *model.EquipmentRecord, note *model.Notification) error
	UpdateEquipment(ctx context.Context, e *model.EquipmentRecord) error
	DeleteEquipment(ctx context.Context, id string) error
}

// MasterDataStore manages dropdown vocabularies.
type MasterDataStore interface {
	ListMasterData(ctx context.Context, category model.MasterCategory) ([]model.MasterData, error)
	CreateMasterData(ctx context.Context, m *model.MasterData) error
	PatchMasterData(ctx context.Context, id string, patch MasterDataPatch) (*model.MasterData, error)
	DeleteMasterData(ctx context.Context, id string) error
}

// SheetLinkStore manages external spreadsheet shortcuts.
type SheetLinkStore interface {
	ListSheetLinks(ctx context.Context) ([]model.SheetLink, error)
	CreateSheetLink(ctx context.Context, l *model.SheetLink) error
	DeleteSheetLink(ctx context.Context, id string) error
}

// NotificationStore manages the notification feed.
type NotificationStore interface {
	ListNotifications(ctx context.Context, limit int) ([]model.Notification, error)
	GetNotification(ctx context.Context, id string) (*model.Notification, error)
	CreateNotification(ctx context.Context, n *model.Notification) error
	MarkAllNotificationsRead(ctx context.Context) (int64, error)
}

// ConfigStore manages SystemConfig key/value rows.
type ConfigStore interface {
	ListConfig(ctx context.Context) ([]model.SystemConfig, error)
	GetConfig(ctx context.Context, key string) (string, bool, error)
	UpsertConfig(ctx context.Context, key, value string) (*model.SystemConfig, error)
	SeedConfig(ctx context.Context, defaults map[string]string) error
}

// BackupStore exports and restores the wire and equipment tables.
type BackupStore interface {
	Export(ctx context.Context, note *model.Notification) (*Snapshot, error)
	Restore(ctx context.Context, snap *Snapshot, note *model.Notification) error
}

// SearchStore runs free-text lookups.
type SearchStore interface {
	SearchWires(ctx context.Context, query string, limit int) ([]model.WireRecord, error)
	SearchEquipment(ctx context.Context, query string, limit int) ([]model.EquipmentRecord, error)
}

// ImportStore writes bulk-import batches.
type ImportStore interface {
	ImportBatch(ctx context.Context, b *bulkimport.Batch) (bulkimport.Counts, error)
}

// PushStore manages browser push subscriptions.
type PushStore interface {
	ListPushSubscriptions(ctx context.Context) ([]model.PushSubscription, error)
	GetPushSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	SavePushSubscription(ctx context.Context, s *model.PushSubscription) error
	DeletePushSubscription(ctx context.Context, endpoint string) error
}

// SummaryStore aggregates dashboard figures.
type SummaryStore interface {
	Summary(ctx context.Context, from, to *model.Date) (*Summary, error)
}

// Store defines the interface for all database operations.
type Store interface {
	LedgerStore
	WireStore
	EquipmentStore
	MasterDataStore
	SheetLinkStore
	NotificationStore
	ConfigStore
	BackupStore
	SearchStore
	ImportStore
	PushStore
	SummaryStore

	Ping(ctx context.Context) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Ping checks database connectivity.
func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// notFound maps gorm's missing-row error onto ErrNotFound.
func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %s: %w", what, id, err)
}

// deleteByID deletes one row and reports ErrNotFound when nothing matched.
func deleteByID(db *gorm.DB, dest any, what, id string) error {
	res := db.Where("id = ?", id).Delete(dest)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s %s: %w", what, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}
