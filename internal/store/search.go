package store

import (
	"context"
	"fmt"
	"strings"

	"mill-maintenance-backend/internal/model"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching query anywhere.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}

// anyLike ORs a case-insensitive LIKE over the given columns.
func anyLike(columns ...string) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = fmt.Sprintf(`LOWER(%s) LIKE @q ESCAPE '\'`, c)
	}
	return strings.Join(parts, " OR ")
}

var (
	wireSearch      = anyLike("machine_name", "party_name", "wire_type", "remark")
	equipmentSearch = anyLike("equipment_name", "group_name", "remark")
)

// SearchWires matches query against machine, party, wire type and remark.
func (s *gormStore) SearchWires(ctx context.Context, query string, limit int) ([]model.WireRecord, error) {
	wires := []model.WireRecord{}
	if err := s.db.WithContext(ctx).
		Where(wireSearch, map[string]any{"q": containsPattern(query)}).
		Order("created_at DESC").Limit(limit).
		Find(&wires).Error; err != nil {
		return nil, fmt.Errorf("failed to search wire records: %w", err)
	}
	return wires, nil
}

// SearchEquipment matches query against equipment name, group and remark.
func (s *gormStore) SearchEquipment(ctx context.Context, query string, limit int) ([]model.EquipmentRecord, error) {
	records := []model.EquipmentRecord{}
	if err := s.db.WithContext(ctx).
		Where(equipmentSearch, map[string]any{"q": containsPattern(query)}).
		Order("created_at DESC").Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to search equipment records: %w", err)
	}
	return records, nil
}
