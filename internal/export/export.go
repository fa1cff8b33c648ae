package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"mill-maintenance-backend/internal/model"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts csv or xlsx case-insensitively; empty means csv.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename builds a dated download name such as wire-records-2025-11-02.csv.
func (f Format) Filename(base string, at time.Time) string {
	return fmt.Sprintf("%s-%s.%s", base, at.Format(model.DateLayout), f)
}

// Sheet is a header plus rows of cell values, ready to be written in any format.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Write encodes the sheet in the given format.
func (s *Sheet) Write(w io.Writer, f Format) error {
	if f == FormatXLSX {
		return s.WriteXLSX(w)
	}
	return s.WriteCSV(w)
}

// WriteCSV writes the sheet as RFC 4180 CSV.
func (s *Sheet) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Header); err != nil {
		return err
	}
	record := make([]string, len(s.Header))
	for _, row := range s.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = text(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the sheet as a single-worksheet workbook with a bold header.
func (s *Sheet) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	name := s.Name
	if name == "" {
		name = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return err
	}

	header := make([]any, len(s.Header))
	for i, h := range s.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(s.Header))
	if err := f.SetCellStyle(name, "A1", last+"1", bold); err != nil {
		return err
	}

	for i, row := range s.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = cell(v)
		}
		if err := f.SetSheetRow(name, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}

	for i, h := range s.Header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(name, col, col, float64(max(len(h), 10)+2))
	}

	return f.Write(w)
}

// cell converts values excelize cannot store natively.
func cell(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		f, _ := x.Float64()
		return f
	case decimal.NullDecimal:
		if !x.Valid {
			return nil
		}
		f, _ := x.Decimal.Float64()
		return f
	case *int64:
		if x == nil {
			return nil
		}
		return *x
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case model.Date:
		if x.IsZero() {
			return nil
		}
		return x.String()
	}
	return v
}

// text renders a cell value for CSV.
func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case int64:
		return fmt.Sprint(x)
	case *int64:
		if x == nil {
			return ""
		}
		return fmt.Sprint(*x)
	case decimal.Decimal:
		return x.String()
	case decimal.NullDecimal:
		if !x.Valid {
			return ""
		}
		return x.Decimal.String()
	case model.Date:
		if x.IsZero() {
			return ""
		}
		return x.String()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// Wires lays out wire records in bulk-import field order.
func Wires(records []model.WireRecord) *Sheet {
	s := &Sheet{
		Name: "Wire Records",
		Header: []string{"Change Date", "Machine", "Wire Type", "Party", "Production At Installation",
			"Production At Removal", "Wire Life (MT)", "Expected Life (MT)", "Wire Cost", "Remark"},
	}
	for _, w := range records {
		s.Rows = append(s.Rows, []any{w.ChangeDate, w.MachineName, w.WireType, w.PartyName, w.ProductionAtInstallation,
			w.ProductionAtRemoval, w.WireLifeMT, w.ExpectedLifeMT, w.WireCost, w.Remark})
	}
	return s
}

// Equipment lays out equipment records in bulk-import field order.
func Equipment(records []model.EquipmentRecord) *Sheet {
	s := &Sheet{
		Name: "Equipment Records",
		Header: []string{"Change Date", "Group", "Equipment", "Downtime (min)", "Total Production", "Production Impact",
			"Downtime Category", "Maintenance Cost", "Spare Part Used", "Technician", "Remark"},
	}
	for _, e := range records {
		s.Rows = append(s.Rows, []any{e.ChangeDate, e.GroupName, e.EquipmentName, e.DowntimeMinutes, e.TotalProduction,
			string(e.ProductionImpact), e.DowntimeCategory, e.MaintenanceCost, e.SparePartUsed, e.TechnicianName, e.Remark})
	}
	return s
}

// Ledger lays out one ledger as date, amount, remark.
func Ledger(kind model.LedgerKind, entries []model.LedgerEntry) *Sheet {
	title := strings.ToUpper(string(kind[:1])) + string(kind[1:])
	s := &Sheet{
		Name:   title,
		Header: []string{"Date", title, "Remark"},
	}
	for _, e := range entries {
		s.Rows = append(s.Rows, []any{e.Date, e.Amount, e.Remark})
	}
	return s
}
