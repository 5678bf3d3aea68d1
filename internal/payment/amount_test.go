package payment

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountFromMinorUnits(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{150000, "1500.00"},
		{99, "0.99"},
		{100, "1.00"},
		{1, "0.01"},
	}
	for _, tc := range tests {
		got := AmountFromMinorUnits(tc.minor).StringFixed(2)
		if got != tc.want {
			t.Fatalf("AmountFromMinorUnits(%d) = %s, want %s", tc.minor, got, tc.want)
		}
	}
}

func TestCostToMinorUnits(t *testing.T) {
	tests := []struct {
		cost string
		want int64
	}{
		{"1500", 150000},
		{"1500.00", 150000},
		{"19.99", 1999},
		{"0.01", 1},
	}
	for _, tc := range tests {
		got := CostToMinorUnits(decimal.RequireFromString(tc.cost))
		if got != tc.want {
			t.Fatalf("CostToMinorUnits(%s) = %d, want %d", tc.cost, got, tc.want)
		}
	}
}
