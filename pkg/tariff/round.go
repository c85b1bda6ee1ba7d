package tariff

import "github.com/shopspring/decimal"

var half = decimal.RequireFromString("0.5")

// Round rounds d to a whole number, sending halves towards positive infinity
// (120.5 -> 121, -0.5 -> 0).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// RoundInt is Round returning an int64.
func RoundInt(d decimal.Decimal) int64 {
	return Round(d).IntPart()
}
