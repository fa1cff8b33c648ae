package bulkimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{name: "Slash with four-digit year", raw: "01/11/2025", expected: "2025-11-01", ok: true},
		{name: "Dash with two-digit year", raw: "5-3-24", expected: "2024-03-05", ok: true},
		{name: "Already ISO", raw: "2025-01-31", expected: "2025-01-31", ok: true},
		{name: "Surrounding spaces", raw: "  07/08/2023 ", expected: "2023-08-07", ok: true},
		{name: "Impossible day", raw: "31/02/2024", ok: false},
		{name: "Month out of range", raw: "01/13/2024", ok: false},
		{name: "Free text", raw: "yesterday", ok: false},
		{name: "Three-digit year", raw: "01/01/202", ok: false},
		{name: "Empty", raw: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeDate(tc.raw)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("Header row is skipped", func(t *testing.T) {
		table := Parse("Date\tProduction\tDispatch\n01/11/2025\t1,250\t900\n02/11/2025\t1300\n")
		assert.Equal(t, []string{"Date", "Production", "Dispatch"}, table.Header)
		assert.Len(t, table.Rows, 2)
		assert.Equal(t, 3, table.Columns)
	})

	t.Run("Data-only paste keeps first line", func(t *testing.T) {
		table := Parse("01/11/2025\t1250\r\n\r\n02/11/2025\t1300\t5\tx")
		assert.Nil(t, table.Header)
		assert.Len(t, table.Rows, 2)
		assert.Equal(t, 4, table.Columns)
	})

	t.Run("Header hints are case-insensitive", func(t *testing.T) {
		assert.True(t, IsHeader("MACHINE\tWire"))
		assert.True(t, IsHeader("Equipment name"))
		assert.False(t, IsHeader("PM1\t100000"))
	})

	t.Run("Blank input", func(t *testing.T) {
		table := Parse("\n  \n")
		assert.Empty(t, table.Rows)
		assert.Equal(t, 0, table.Columns)
	})
}

func TestParseInt(t *testing.T) {
	n, err := ParseInt(" 1,20,000 ")
	assert.NoError(t, err)
	assert.Equal(t, int64(120000), n)

	n, err = ParseInt("99.6")
	assert.NoError(t, err)
	assert.Equal(t, int64(100), n)

	_, err = ParseInt("n/a")
	assert.Error(t, err)

	n, err = ParseInt("9223372036854775807")
	assert.NoError(t, err)
	assert.Equal(t, int64(9223372036854775807), n)

	for _, s := range []string{"99999999999999999999", "1e30", "-9,22,33,72,03,68,54,77,58,09"} {
		_, err = ParseInt(s)
		assert.ErrorContains(t, err, "out of range", s)
	}
}
