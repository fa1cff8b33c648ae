package bulkimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMapping(t *testing.T) {
	tmpl, err := Lookup(ProductionDispatch)
	require.NoError(t, err)

	m := DefaultMapping(tmpl, 6)
	assert.Equal(t, Mapping{"date", "production", "dispatch", "remark", Ignore, Ignore}, m)

	assert.Equal(t, Mapping{"date", "production"}, DefaultMapping(tmpl, 2))
}

func TestMapping_AssignIsExclusive(t *testing.T) {
	tmpl, err := Lookup(WireRecords)
	require.NoError(t, err)

	m := DefaultMapping(tmpl, 4)
	require.Equal(t, "machineName", m[1])

	require.NoError(t, m.Assign(3, "machineName"))
	assert.Equal(t, Ignore, m[1])
	assert.Equal(t, "machineName", m[3])
	assert.NoError(t, m.Check(tmpl))

	require.NoError(t, m.Assign(0, ""))
	assert.Equal(t, Ignore, m[0])

	assert.Error(t, m.Assign(4, "wireType"))
	assert.Error(t, m.Assign(-1, "wireType"))
}

func TestMapping_Check(t *testing.T) {
	tmpl, err := Lookup(StockOnly)
	require.NoError(t, err)

	assert.NoError(t, Mapping{"date", "stock", Ignore}.Check(tmpl))
	assert.ErrorContains(t, Mapping{"date", "date"}.Check(tmpl), "column 0 and column 1")

	err = Mapping{"date", "production"}.Check(tmpl)
	assert.ErrorContains(t, err, `unknown field "production"`)
	assert.ErrorContains(t, err, "expected one of date, stock, remark")
}

func TestMapping_Fit(t *testing.T) {
	assert.Equal(t, Mapping{"date", Ignore, Ignore}, Mapping{"date", ""}.Fit(3))
	assert.Equal(t, Mapping{"date"}, Mapping{"date", "stock"}.Fit(1))
}

func TestLookup(t *testing.T) {
	tmpl, err := Lookup("wire_records")
	require.NoError(t, err)
	assert.Equal(t, WireRecords, tmpl.Type)

	_, err = Lookup("INVOICES")
	assert.Error(t, err)
	assert.Len(t, Types(), 6)
}
