package payment

import "github.com/shopspring/decimal"

var minorUnitsPerMajor = decimal.NewFromInt(100)

// AmountFromMinorUnits converts a provider-reported total (minor units) into
// the major-unit amount stored on payment records.
func AmountFromMinorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(minorUnitsPerMajor)
}

// CostToMinorUnits converts a booking cost into the minor-unit integer the
// checkout provider expects for a line item.
func CostToMinorUnits(cost decimal.Decimal) int64 {
	return cost.Mul(minorUnitsPerMajor).Round(0).IntPart()
}
