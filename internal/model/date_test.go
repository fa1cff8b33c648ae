package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-11-01"}`), &payload))
	assert.Equal(t, "2025-11-01", payload.Date.String())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-11-01"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-11-01T18:30:00Z"}`), &payload))
	assert.Equal(t, "2025-11-01", payload.Date.String())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"01/11/2025"}`), &payload))
	assert.Error(t, json.Unmarshal([]byte(`{"date":20251101}`), &payload))
}

func TestDate_ZeroIsNull(t *testing.T) {
	out, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDate_Scan(t *testing.T) {
	testCases := []struct {
		name string
		src  any
		want string
	}{
		{name: "time", src: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), want: "2024-03-05"},
		{name: "sqlite string", src: "2024-03-05 00:00:00+00:00", want: "2024-03-05"},
		{name: "bytes", src: []byte("2024-03-05"), want: "2024-03-05"},
		{name: "nil", src: nil, want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tc.src))
			assert.Equal(t, tc.want, d.String())
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("yesterday"))
}
