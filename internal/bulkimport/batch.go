package bulkimport

import (
	"fmt"

	"github.com/shopspring/decimal"

	"mill-maintenance-backend/internal/model"
)

// Batch groups materialized rows by destination table.
type Batch struct {
	Production []model.ProductionRecord
	Dispatch   []model.DispatchRecord
	Stock      []model.StockRecord
	Wire       []model.WireRecord
	Equipment  []model.EquipmentRecord
}

// Counts is the number of rows a batch writes to each table.
type Counts struct {
	Production int `json:"production"`
	Dispatch   int `json:"dispatch"`
	Stock      int `json:"stock"`
	Wire       int `json:"wire"`
	Equipment  int `json:"equipment"`
}

// Counts reports the per-table sizes of the batch.
func (b *Batch) Counts() Counts {
	return Counts{
		Production: len(b.Production),
		Dispatch:   len(b.Dispatch),
		Stock:      len(b.Stock),
		Wire:       len(b.Wire),
		Equipment:  len(b.Equipment),
	}
}

// Empty reports whether the batch writes nothing.
func (b *Batch) Empty() bool {
	return len(b.Production)+len(b.Dispatch)+len(b.Stock)+len(b.Wire)+len(b.Equipment) == 0
}

// Materialize converts validated records into model rows. Records are
// expected to have passed Validate; a conversion failure is still reported.
func Materialize(t *Template, records []Record) (*Batch, error) {
	b := &Batch{}
	for i, r := range records {
		if err := b.add(t.Type, r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return b, nil
}

func (b *Batch) add(t ImportType, r Record) error {
	switch t {
	case ProductionDispatch, ProductionOnly, DispatchOnly, StockOnly:
		return b.addLedger(r)
	case WireRecords:
		w, err := toWire(r)
		if err != nil {
			return err
		}
		b.Wire = append(b.Wire, w)
	case EquipmentRecords:
		e, err := toEquipment(r)
		if err != nil {
			return err
		}
		b.Equipment = append(b.Equipment, e)
	default:
		return fmt.Errorf("unknown import type %q", t)
	}
	return nil
}

func (b *Batch) addLedger(r Record) error {
	date, err := model.ParseDate(r.Values["date"])
	if err != nil {
		return err
	}
	remark := optional(r.Values["remark"])

	entry := func(field string) (model.LedgerEntry, bool, error) {
		v, ok := r.Values[field]
		if !ok || v == "" {
			return model.LedgerEntry{}, false, nil
		}
		amount, err := ParseDecimal(v)
		if err != nil {
			return model.LedgerEntry{}, false, fmt.Errorf("%s: %w", field, err)
		}
		return model.LedgerEntry{Date: date, Amount: amount, Remark: remark}, true, nil
	}

	if e, ok, err := entry("production"); err != nil {
		return err
	} else if ok {
		b.Production = append(b.Production, model.ProductionRecord{LedgerEntry: e})
	}
	if e, ok, err := entry("dispatch"); err != nil {
		return err
	} else if ok {
		b.Dispatch = append(b.Dispatch, model.DispatchRecord{LedgerEntry: e})
	}
	if e, ok, err := entry("stock"); err != nil {
		return err
	} else if ok {
		b.Stock = append(b.Stock, model.StockRecord{LedgerEntry: e})
	}
	return nil
}

func toWire(r Record) (model.WireRecord, error) {
	date, err := model.ParseDate(r.Values["changeDate"])
	if err != nil {
		return model.WireRecord{}, err
	}
	install, err := ParseInt(r.Values["installProd"])
	if err != nil {
		return model.WireRecord{}, fmt.Errorf("installProd: %w", err)
	}
	removal, err := optionalInt(r.Values["removalProd"])
	if err != nil {
		return model.WireRecord{}, fmt.Errorf("removalProd: %w", err)
	}
	expected, err := optionalInt(r.Values["expectedLife"])
	if err != nil {
		return model.WireRecord{}, fmt.Errorf("expectedLife: %w", err)
	}
	cost, err := optionalDecimal(r.Values["wireCost"])
	if err != nil {
		return model.WireRecord{}, fmt.Errorf("wireCost: %w", err)
	}
	return model.WireRecord{
		MachineName:              r.Values["machineName"],
		WireType:                 r.Values["wireType"],
		PartyName:                r.Values["partyName"],
		ProductionAtInstallation: install,
		ProductionAtRemoval:      removal,
		WireLifeMT:               model.ComputeLife(install, removal, nil),
		ExpectedLifeMT:           expected,
		WireCost:                 cost,
		ChangeDate:               date,
		Remark:                   optional(r.Values["remark"]),
	}, nil
}

func toEquipment(r Record) (model.EquipmentRecord, error) {
	date, err := model.ParseDate(r.Values["changeDate"])
	if err != nil {
		return model.EquipmentRecord{}, err
	}
	impact, err := model.ParseProductionImpact(r.Values["productionImpact"])
	if err != nil {
		return model.EquipmentRecord{}, err
	}
	var downtime, total int64
	if v := r.Values["downtime"]; v != "" {
		if downtime, err = ParseInt(v); err != nil {
			return model.EquipmentRecord{}, fmt.Errorf("downtime: %w", err)
		}
	}
	if v := r.Values["totalProduction"]; v != "" {
		if total, err = ParseInt(v); err != nil {
			return model.EquipmentRecord{}, fmt.Errorf("totalProduction: %w", err)
		}
	}
	cost, err := optionalDecimal(r.Values["maintenanceCost"])
	if err != nil {
		return model.EquipmentRecord{}, fmt.Errorf("maintenanceCost: %w", err)
	}
	return model.EquipmentRecord{
		GroupName:        r.Values["groupName"],
		EquipmentName:    r.Values["equipmentName"],
		DowntimeMinutes:  downtime,
		TotalProduction:  total,
		ChangeDate:       date,
		ProductionImpact: impact,
		DowntimeCategory: optional(r.Values["downtimeCategory"]),
		MaintenanceCost:  cost,
		SparePartUsed:    optional(r.Values["sparePartUsed"]),
		TechnicianName:   optional(r.Values["technicianName"]),
		Remark:           optional(r.Values["remark"]),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	n, err := ParseInt(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optionalDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := ParseDecimal(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
