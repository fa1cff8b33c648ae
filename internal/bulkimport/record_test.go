package bulkimport

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wirePaste = "Change Date\tMachine\tWire Type\tParty\tInstall\tRemoval\n" +
	"01/11/2025\tPM1\tForming\tAstenJohnson\t1,00,000\t1,20,000\n" +
	"5-3-24\tPM2\tPress\tXerium\t\t\n" +
	"\t\t\t\t\t\n" +
	"07/03/2024\tPM2\tPress\tXerium\t55000\t\n" +
	"32/01/2024\tPM3\tDryer\tVoith\t1000\t\n"

func TestProcess_WireRecords(t *testing.T) {
	tmpl, err := Lookup(WireRecords)
	require.NoError(t, err)

	table := Parse(wirePaste)
	require.Len(t, table.Rows, 4)

	rows := Process(tmpl, DefaultMapping(tmpl, table.Columns), table)
	require.Len(t, rows, 4)

	assert.Equal(t, StatusValid, rows[0].Status)
	assert.Equal(t, "2025-11-01", rows[0].Record.Values["changeDate"])
	assert.Equal(t, "100000", rows[0].Record.Values["installProd"])

	assert.Equal(t, StatusInvalid, rows[1].Status, "missing installProd")
	assert.Contains(t, rows[1].Errors, "installProd is required")

	assert.Equal(t, StatusValid, rows[2].Status)

	assert.Equal(t, StatusInvalid, rows[3].Status)
	require.Len(t, rows[3].Errors, 1)
	assert.Contains(t, rows[3].Errors[0], `"32/01/2024"`)

	valid := Valid(rows)
	assert.Len(t, valid, 2)

	batch, err := Materialize(tmpl, valid)
	require.NoError(t, err)
	assert.Equal(t, Counts{Wire: 2}, batch.Counts())
	require.NotNil(t, batch.Wire[0].WireLifeMT)
	assert.Equal(t, int64(20000), *batch.Wire[0].WireLifeMT)
	assert.Nil(t, batch.Wire[1].ProductionAtRemoval)
	assert.Nil(t, batch.Wire[1].WireLifeMT)
}

func TestProcess_IntegerFieldOutOfRange(t *testing.T) {
	tmpl, err := Lookup(WireRecords)
	require.NoError(t, err)

	table := Parse("01/11/2025\tPM1\tForming\tAstenJohnson\t99999999999999999999\n" +
		"02/11/2025\tPM1\tForming\tAstenJohnson\t1e30\n" +
		"03/11/2025\tPM1\tForming\tAstenJohnson\t100000\n")
	rows := Process(tmpl, DefaultMapping(tmpl, table.Columns), table)
	require.Len(t, rows, 3)

	assert.Equal(t, StatusInvalid, rows[0].Status)
	assert.Contains(t, rows[0].Errors, `installProd "99999999999999999999" is too large`)
	assert.Equal(t, StatusInvalid, rows[1].Status)
	assert.Equal(t, StatusValid, rows[2].Status)

	batch, err := Materialize(tmpl, Valid(rows))
	require.NoError(t, err)
	assert.Equal(t, Counts{Wire: 1}, batch.Counts())
}

func TestProcess_RemappedColumns(t *testing.T) {
	tmpl, err := Lookup(ProductionDispatch)
	require.NoError(t, err)

	table := Parse("900\t01/11/2025\n950\t02/11/2025\n")
	m := DefaultMapping(tmpl, table.Columns)
	require.NoError(t, m.Assign(0, "dispatch"))
	require.NoError(t, m.Assign(1, "date"))
	assert.Equal(t, Mapping{"dispatch", "date"}, m)

	rows := Process(tmpl, m, table)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, StatusValid, r.Status, r.Errors)
	}

	batch, err := Materialize(tmpl, Valid(rows))
	require.NoError(t, err)
	assert.Equal(t, Counts{Dispatch: 2}, batch.Counts())
	assert.True(t, decimal.NewFromInt(900).Equal(batch.Dispatch[0].Amount))
}

func TestValidate_ProductionDispatchNeedsAnAmount(t *testing.T) {
	tmpl, err := Lookup(ProductionDispatch)
	require.NoError(t, err)

	rec, ok := FromValues(tmpl, map[string]string{"date": "01/11/2025", "remark": "shutdown"})
	require.True(t, ok)
	assert.Equal(t, []string{"production or dispatch is required"}, Validate(tmpl, rec))

	rec, _ = FromValues(tmpl, map[string]string{"date": "01/11/2025", "production": "1,250.5", "dispatch": "1000"})
	assert.Empty(t, Validate(tmpl, rec))

	batch, err := Materialize(tmpl, []Record{rec})
	require.NoError(t, err)
	assert.Equal(t, Counts{Production: 1, Dispatch: 1}, batch.Counts())
	assert.Equal(t, "1250.5", batch.Production[0].Amount.String())
}

func TestValidate_Equipment(t *testing.T) {
	tmpl, err := Lookup(EquipmentRecords)
	require.NoError(t, err)

	rec, _ := FromValues(tmpl, map[string]string{
		"changeDate": "2024-06-01", "groupName": "Press", "equipmentName": "Felt roll",
		"downtime": "45", "productionImpact": "maybe",
	})
	errs := Validate(tmpl, rec)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "productionImpact")

	rec.Values["productionImpact"] = "yes"
	assert.Empty(t, Validate(tmpl, rec))

	batch, err := Materialize(tmpl, []Record{rec})
	require.NoError(t, err)
	assert.Equal(t, int64(45), batch.Equipment[0].DowntimeMinutes)
	assert.Equal(t, "Yes", string(batch.Equipment[0].ProductionImpact))
}

func TestBuild_DropsEmptyRows(t *testing.T) {
	tmpl, err := Lookup(StockOnly)
	require.NoError(t, err)

	_, ok := Build(tmpl, Mapping{"date", "stock", Ignore}, []string{" ", "", "note"})
	assert.False(t, ok, "only ignored columns carry data")
}
