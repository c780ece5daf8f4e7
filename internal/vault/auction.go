package vault

import (
	"github.com/shopspring/decimal"
)

// ProtocolFee the slice of the retained gain kept by the protocol
func ProtocolFee(retainedGain decimal.Decimal) decimal.Decimal {
	if retainedGain.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return retainedGain.Mul(ProtocolFeeRate).Truncate(MaxPrecision)
}

// FeeShares shares minted to the fee receiver for fee, priced as if
// cost minus the fee had already been credited to the holder base:
// the minted shares are diluted against the post-sale total, so
// existing holders never pay for the fee.
//
//	feeShares / (totalShares + feeShares) * newDeposits == fee
func FeeShares(fee, newDeposits, totalShares decimal.Decimal) decimal.Decimal {
	if fee.LessThanOrEqual(decimal.Zero) || totalShares.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	base := newDeposits.Sub(fee)
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return totalShares.Mul(fee).Div(base).Truncate(MaxPrecision)
}
