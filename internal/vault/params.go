package vault

import (
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerWeek length of one distribution period
	SecondsPerWeek int64 = 604800
	// MaxPrecision max precision
	MaxPrecision int32 = 18
	// ProtocolFeeRate share of the retained auction gain kept as fee
	ProtocolFeeRate = decimal.NewFromFloat(0.2)
	// Breakeven gain ratio at which a position neither gains nor loses
	Breakeven = decimal.NewFromInt(1)
)

// Week the calendar week bucket a unix timestamp falls in
func Week(ts int64) int64 {
	return ts / SecondsPerWeek
}

// SameWeek whether two timestamps fall in the same week bucket
func SameWeek(a, b int64) bool {
	return Week(a) == Week(b)
}
