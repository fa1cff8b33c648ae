package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v int64) *int64 { return &v }

func TestComputeLife(t *testing.T) {
	testCases := []struct {
		name     string
		install  int64
		removal  *int64
		explicit *int64
		expected *int64
	}{
		{name: "Derived from readings", install: 100000, removal: ptr(120000), expected: ptr(20000)},
		{name: "Active wire has no life", install: 100000, removal: nil, expected: nil},
		{name: "Explicit value wins", install: 100000, removal: ptr(120000), explicit: ptr(19500), expected: ptr(19500)},
		{name: "Explicit value without removal", install: 5, explicit: ptr(7), expected: ptr(7)},
		{name: "Removal below installation", install: 500, removal: ptr(400), expected: nil},
		{name: "Zero life", install: 500, removal: ptr(500), expected: ptr(0)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeLife(tc.install, tc.removal, tc.explicit))
		})
	}
}

func TestComputeLife_RemovalBelowInstallationIsNull(t *testing.T) {
	assert.Nil(t, ComputeLife(120000, ptr(100000), nil))
	assert.Nil(t, ComputeLife(1, ptr(0), nil))
	assert.Equal(t, ptr(20000), ComputeLife(120000, ptr(100000), ptr(20000)))
}

func TestComputeLife_DoesNotAliasExplicit(t *testing.T) {
	explicit := ptr(10)
	life := ComputeLife(0, nil, explicit)
	*explicit = 99
	assert.Equal(t, int64(10), *life)
}

func TestWireRecord_Active(t *testing.T) {
	assert.True(t, (&WireRecord{}).Active())
	assert.False(t, (&WireRecord{ProductionAtRemoval: ptr(1)}).Active())
}

func TestParseProductionImpact(t *testing.T) {
	for in, want := range map[string]ProductionImpact{"": ImpactNo, "yes": ImpactYes, " REMARK ": ImpactRemark, "No": ImpactNo} {
		got, err := ParseProductionImpact(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseProductionImpact("maybe")
	assert.Error(t, err)
}
