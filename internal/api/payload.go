package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"mill-maintenance-backend/internal/bulkimport"
)

// Form fields arrive as JSON numbers or as numeric strings typed into inputs,
// sometimes with thousands separators. Empty strings and null mean "not given".

// flexInt is an optional integer accepting numbers or numeric strings.
type flexInt struct {
	Valid bool
	Int64 int64
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s, null, err := scalar(b)
	if err != nil || null {
		*f = flexInt{}
		return err
	}
	v, err := bulkimport.ParseInt(s)
	if err != nil {
		return err
	}
	*f = flexInt{Valid: true, Int64: v}
	return nil
}

// Ptr returns nil for a missing value.
func (f flexInt) Ptr() *int64 {
	if !f.Valid {
		return nil
	}
	v := f.Int64
	return &v
}

// flexDecimal is an optional decimal accepting numbers or numeric strings.
type flexDecimal struct {
	Valid   bool
	Decimal decimal.Decimal
}

func (f *flexDecimal) UnmarshalJSON(b []byte) error {
	s, null, err := scalar(b)
	if err != nil || null {
		*f = flexDecimal{}
		return err
	}
	d, err := bulkimport.ParseDecimal(s)
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	*f = flexDecimal{Valid: true, Decimal: d}
	return nil
}

// Null converts to the nullable column type.
func (f flexDecimal) Null() decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: f.Decimal, Valid: f.Valid}
}

// cellValue is a bulk-import cell: a string, a number or null.
type cellValue string

func (v *cellValue) UnmarshalJSON(b []byte) error {
	s, _, err := scalar(b)
	*v = cellValue(s)
	return err
}

// scalar unwraps a JSON string or number into its text. It reports null for
// JSON null and for blank strings.
func scalar(b []byte) (string, bool, error) {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		return "", true, nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", false, err
		}
		return s, strings.TrimSpace(s) == "", nil
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		return string(b), false, nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return "", false, fmt.Errorf("expected a string or number, got %s", b)
		}
		if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
			return "", false, err
		}
		return n.String(), false, nil
	}
}
