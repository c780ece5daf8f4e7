package number

import "github.com/shopspring/decimal"

// Decimal parse v, yielding zero on malformed input
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// Ceil round d up at the given precision
func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}
