package bulkimport

import (
	"fmt"
	"strings"
)

// Mapping assigns each pasted column (by index) a template field or Ignore.
type Mapping []string

// DefaultMapping maps column i to the template's i-th field; extra columns are ignored.
func DefaultMapping(t *Template, columns int) Mapping {
	m := make(Mapping, columns)
	for i := range m {
		if i < len(t.Fields) {
			m[i] = t.Fields[i].Name
		} else {
			m[i] = Ignore
		}
	}
	return m
}

// Assign maps column to field. A field is held by at most one column, so any
// other column currently mapped to field falls back to Ignore.
func (m Mapping) Assign(column int, field string) error {
	if column < 0 || column >= len(m) {
		return fmt.Errorf("column %d out of range (0-%d)", column, len(m)-1)
	}
	if field == "" {
		field = Ignore
	}
	if field != Ignore {
		for i := range m {
			if i != column && m[i] == field {
				m[i] = Ignore
			}
		}
	}
	m[column] = field
	return nil
}

// Check verifies every mapped field exists in t and is used once.
func (m Mapping) Check(t *Template) error {
	seen := make(map[string]int, len(m))
	for col, field := range m {
		if field == Ignore || field == "" {
			continue
		}
		if _, ok := t.Field(field); !ok {
			return fmt.Errorf("column %d: unknown field %q for %s (expected one of %s)",
				col, field, t.Type, strings.Join(t.FieldNames(), ", "))
		}
		if prev, dup := seen[field]; dup {
			return fmt.Errorf("field %q mapped to both column %d and column %d", field, prev, col)
		}
		seen[field] = col
	}
	return nil
}

// Fit pads or truncates m to the given column count, filling new columns with Ignore.
func (m Mapping) Fit(columns int) Mapping {
	out := make(Mapping, columns)
	for i := range out {
		if i < len(m) && m[i] != "" {
			out[i] = m[i]
		} else {
			out[i] = Ignore
		}
	}
	return out
}
