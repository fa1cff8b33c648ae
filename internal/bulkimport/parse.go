package bulkimport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// headerHints mark a first line as a header row to be skipped.
var headerHints = []string{"date", "production", "machine", "equipment"}

var (
	isoDateRe = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	dmyDateRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2}|\d{4})$`)
)

// Table is pasted tabular text split into raw cells.
type Table struct {
	Header  []string   `json:"header,omitempty"`
	Rows    [][]string `json:"rows"`
	Columns int        `json:"columns"`
}

// Parse splits tab-separated text into rows. The first line is treated as a
// header when it contains one of the header hints; blank lines are dropped.
func Parse(text string) Table {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var table Table
	first := true
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, "\t")
		if first {
			first = false
			if IsHeader(line) {
				table.Header = trimAll(cells)
				continue
			}
		}
		table.Rows = append(table.Rows, cells)
		if len(cells) > table.Columns {
			table.Columns = len(cells)
		}
	}
	return table
}

// IsHeader reports whether line looks like a header row.
func IsHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, hint := range headerHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

// CleanNumber strips whitespace and thousands separators from a numeric cell.
func CleanNumber(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

// ParseDecimal parses a numeric cell, tolerating thousands separators.
func ParseDecimal(s string) (decimal.Decimal, error) {
	cleaned := CleanNumber(s)
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty number")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q is not a number", s)
	}
	return d, nil
}

// ParseInt parses a numeric cell and rounds it to a whole number. Values
// outside the int64 range are rejected.
func ParseInt(s string) (int64, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	whole := d.Round(0)
	if !whole.BigInt().IsInt64() {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return whole.IntPart(), nil
}

// NormalizeDate converts DD/MM/YYYY, DD-MM-YYYY (two-digit years are 20xx)
// or YYYY-MM-DD into YYYY-MM-DD. It reports false for anything else,
// including impossible calendar days.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)

	var y, m, d int
	if match := isoDateRe.FindStringSubmatch(s); match != nil {
		y, m, d = atoi(match[1]), atoi(match[2]), atoi(match[3])
	} else if match := dmyDateRe.FindStringSubmatch(s); match != nil {
		d, m, y = atoi(match[1]), atoi(match[2]), atoi(match[3])
		if len(match[3]) == 2 {
			y += 2000
		}
	} else {
		return "", false
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
