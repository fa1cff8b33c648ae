package bulkimport

import (
	"fmt"
	"strings"
)

// MarshalText renders the kind for template listings.
func (k FieldKind) MarshalText() ([]byte, error) {
	switch k {
	case KindNumber:
		return []byte("number"), nil
	case KindDate:
		return []byte("date"), nil
	default:
		return []byte("text"), nil
	}
}

// UnmarshalText accepts the names produced by MarshalText.
func (k *FieldKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "number":
		*k = KindNumber
	case "date":
		*k = KindDate
	case "text":
		*k = KindText
	default:
		return fmt.Errorf("unknown field kind %q", b)
	}
	return nil
}

// Record is one structured row: field name to cleaned value. Raw keeps the
// pasted text of date fields so a failed normalization can be shown as typed.
type Record struct {
	Values map[string]string `json:"values"`
	Raw    map[string]string `json:"raw,omitempty"`
}

// Status tags a record after validation.
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

// Row is a validated record together with its position in the pasted table.
type Row struct {
	Index  int      `json:"index"`
	Record Record   `json:"record"`
	Status Status   `json:"status"`
	Errors []string `json:"errors,omitempty"`
}

// Build applies the mapping to one raw row. It reports false when no mapped
// cell holds a value, in which case the row is dropped.
func Build(t *Template, m Mapping, cells []string) (Record, bool) {
	rec := Record{Values: map[string]string{}}
	for col, name := range m {
		if name == Ignore || name == "" || col >= len(cells) {
			continue
		}
		field, ok := t.Field(name)
		if !ok {
			continue
		}
		rec.set(field, cells[col])
	}
	return rec, len(rec.Values) > 0
}

// FromValues builds a record from already-mapped values, as posted by a client.
func FromValues(t *Template, values map[string]string) (Record, bool) {
	rec := Record{Values: map[string]string{}}
	for _, field := range t.Fields {
		if v, ok := values[field.Name]; ok {
			rec.set(field, v)
		}
	}
	return rec, len(rec.Values) > 0
}

func (r *Record) set(field Field, cell string) {
	v := strings.TrimSpace(cell)
	if field.Kind == KindNumber {
		v = CleanNumber(v)
	}
	if v == "" {
		return
	}
	if field.Kind == KindDate {
		if r.Raw == nil {
			r.Raw = map[string]string{}
		}
		r.Raw[field.Name] = v
		if norm, ok := NormalizeDate(v); ok {
			v = norm
		}
	}
	r.Values[field.Name] = v
}

// Validate checks a record against the template and returns its problems.
func Validate(t *Template, r Record) []string {
	var errs []string
	for _, field := range t.Fields {
		v, present := r.Values[field.Name]
		if !present || v == "" {
			if field.Required {
				errs = append(errs, fmt.Sprintf("%s is required", field.Name))
			}
			continue
		}
		switch field.Kind {
		case KindDate:
			if _, ok := NormalizeDate(v); !ok {
				shown := v
				if raw, ok := r.Raw[field.Name]; ok {
					shown = raw
				}
				errs = append(errs, fmt.Sprintf("%s %q is not a valid date", field.Name, shown))
			}
		case KindNumber:
			if _, err := ParseDecimal(v); err != nil {
				errs = append(errs, fmt.Sprintf("%s %q is not a number", field.Name, v))
			} else if field.Integer {
				if _, err := ParseInt(v); err != nil {
					errs = append(errs, fmt.Sprintf("%s %q is too large", field.Name, v))
				}
			}
		}
	}
	if t.rule != nil {
		errs = append(errs, t.rule(r)...)
	}
	return errs
}

// Process builds and validates every row of a table under the mapping.
func Process(t *Template, m Mapping, table Table) []Row {
	rows := make([]Row, 0, len(table.Rows))
	for i, cells := range table.Rows {
		rec, ok := Build(t, m, cells)
		if !ok {
			continue
		}
		rows = append(rows, tag(i, rec, Validate(t, rec)))
	}
	return rows
}

func tag(index int, rec Record, errs []string) Row {
	row := Row{Index: index, Record: rec, Status: StatusValid, Errors: errs}
	if len(errs) > 0 {
		row.Status = StatusInvalid
	}
	return row
}

// Valid filters rows down to the records that passed validation.
func Valid(rows []Row) []Record {
	var out []Record
	for _, r := range rows {
		if r.Status == StatusValid {
			out = append(out, r.Record)
		}
	}
	return out
}
