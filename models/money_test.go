package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountString(t *testing.T) {
	cases := []struct {
		cents Amount
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{10000, "100.00"},
		{12345, "123.45"},
		{-250, "-2.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.cents.String())
	}
}

func TestAmountPercent(t *testing.T) {
	cases := []struct {
		cents   Amount
		percent int64
		want    Amount
	}{
		{10000, 30, 3000},
		{10000, 10, 1000},
		{3333, 30, 1000},  // 999.9 rounds up
		{3333, 10, 333},   // 333.3 rounds down
		{1, 30, 0},        // 0.3 rounds down
		{5, 30, 2},        // 1.5 rounds up, half away from zero
		{-5, 30, -2},      // -1.5 rounds away from zero
		{0, 30, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.cents.Percent(tc.percent), "%d%% of %d", tc.percent, tc.cents)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want Amount
	}{
		{"100", 10000},
		{"100.5", 10050},
		{"100.50", 10050},
		{"0.05", 5},
		{".75", 75},
		{"-2.50", -250},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseAmount("1.234")
	assert.Error(t, err, "three fractional digits are rejected")
	_, err = ParseAmount("abc")
	assert.Error(t, err)
}

func TestAmountJSONRoundTrip(t *testing.T) {
	type doc struct {
		Price Amount `json:"price"`
	}

	out, err := json.Marshal(doc{Price: 12345})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":123.45}`, string(out))

	var in doc
	require.NoError(t, json.Unmarshal([]byte(`{"price":123.45}`), &in))
	assert.Equal(t, Amount(12345), in.Price)

	// Quoted numbers are tolerated on input.
	require.NoError(t, json.Unmarshal([]byte(`{"price":"99.90"}`), &in))
	assert.Equal(t, Amount(9990), in.Price)
}
