package bulkimport

import (
	"fmt"
	"strings"
)

// ImportType selects a template and its destination tables.
type ImportType string

const (
	ProductionDispatch ImportType = "PRODUCTION_DISPATCH"
	ProductionOnly     ImportType = "PRODUCTION_ONLY"
	DispatchOnly       ImportType = "DISPATCH_ONLY"
	StockOnly          ImportType = "STOCK_ONLY"
	WireRecords        ImportType = "WIRE_RECORDS"
	EquipmentRecords   ImportType = "EQUIPMENT_RECORDS"
)

// Ignore is the mapping target of a column that is not imported.
const Ignore = "ignore"

// FieldKind decides how a cell is cleaned and validated.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindDate
)

// Field is one importable column of a template. Integer number fields are
// stored in whole-number columns and must fit an int64.
type Field struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Integer  bool      `json:"integer,omitempty"`
	Required bool      `json:"required"`
}

// Template describes the field order and rules of one import type.
type Template struct {
	Type   ImportType `json:"type"`
	Fields []Field    `json:"fields"`

	// rule adds template-wide checks on top of the per-field ones.
	rule func(Record) []string
}

// Field returns the named field definition.
func (t *Template) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames lists the field names in default column order.
func (t *Template) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

var templates = map[ImportType]*Template{
	ProductionDispatch: {
		Type: ProductionDispatch,
		Fields: []Field{
			{Name: "date", Label: "Date", Kind: KindDate, Required: true},
			{Name: "production", Label: "Production (MT)", Kind: KindNumber},
			{Name: "dispatch", Label: "Dispatch (MT)", Kind: KindNumber},
			{Name: "remark", Label: "Remark", Kind: KindText},
		},
		rule: func(r Record) []string {
			if r.Values["production"] == "" && r.Values["dispatch"] == "" {
				return []string{"production or dispatch is required"}
			}
			return nil
		},
	},
	ProductionOnly: ledgerTemplate(ProductionOnly, "production", "Production (MT)"),
	DispatchOnly:   ledgerTemplate(DispatchOnly, "dispatch", "Dispatch (MT)"),
	StockOnly:      ledgerTemplate(StockOnly, "stock", "Stock (MT)"),
	WireRecords: {
		Type: WireRecords,
		Fields: []Field{
			{Name: "changeDate", Label: "Change Date", Kind: KindDate, Required: true},
			{Name: "machineName", Label: "Machine", Kind: KindText, Required: true},
			{Name: "wireType", Label: "Wire Type", Kind: KindText, Required: true},
			{Name: "partyName", Label: "Party", Kind: KindText, Required: true},
			{Name: "installProd", Label: "Production at Installation", Kind: KindNumber, Integer: true, Required: true},
			{Name: "removalProd", Label: "Production at Removal", Kind: KindNumber, Integer: true},
			{Name: "expectedLife", Label: "Expected Life (MT)", Kind: KindNumber, Integer: true},
			{Name: "wireCost", Label: "Wire Cost", Kind: KindNumber},
			{Name: "remark", Label: "Remark", Kind: KindText},
		},
	},
	EquipmentRecords: {
		Type: EquipmentRecords,
		Fields: []Field{
			{Name: "changeDate", Label: "Change Date", Kind: KindDate, Required: true},
			{Name: "groupName", Label: "Group / Section", Kind: KindText, Required: true},
			{Name: "equipmentName", Label: "Equipment", Kind: KindText, Required: true},
			{Name: "downtime", Label: "Downtime (min)", Kind: KindNumber, Integer: true},
			{Name: "totalProduction", Label: "Total Production", Kind: KindNumber, Integer: true},
			{Name: "productionImpact", Label: "Production Impact", Kind: KindText},
			{Name: "downtimeCategory", Label: "Downtime Category", Kind: KindText},
			{Name: "maintenanceCost", Label: "Maintenance Cost", Kind: KindNumber},
			{Name: "sparePartUsed", Label: "Spare Part Used", Kind: KindText},
			{Name: "technicianName", Label: "Technician", Kind: KindText},
			{Name: "remark", Label: "Remark", Kind: KindText},
		},
		rule: func(r Record) []string {
			switch strings.ToLower(r.Values["productionImpact"]) {
			case "", "yes", "no", "remark":
				return nil
			}
			return []string{fmt.Sprintf("productionImpact must be Yes, No or Remark, got %q", r.Values["productionImpact"])}
		},
	},
}

func ledgerTemplate(t ImportType, amountField, label string) *Template {
	return &Template{
		Type: t,
		Fields: []Field{
			{Name: "date", Label: "Date", Kind: KindDate, Required: true},
			{Name: amountField, Label: label, Kind: KindNumber, Required: true},
			{Name: "remark", Label: "Remark", Kind: KindText},
		},
	}
}

// Lookup returns the template for an import type.
func Lookup(t ImportType) (*Template, error) {
	tmpl, ok := templates[ImportType(strings.ToUpper(string(t)))]
	if !ok {
		return nil, fmt.Errorf("unknown import type %q", t)
	}
	return tmpl, nil
}

// Types lists all import types in a stable order.
func Types() []ImportType {
	return []ImportType{ProductionDispatch, ProductionOnly, DispatchOnly, StockOnly, WireRecords, EquipmentRecords}
}
