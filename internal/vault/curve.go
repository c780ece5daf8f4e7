package vault

import (
	"vault/core"

	"github.com/shopspring/decimal"
)

// Curve discount curve parameters. Cutoffs are gain ratios (1 =
// breakeven) and must be strictly increasing above breakeven; the
// multipliers are in (0,1] with the terminal one applying the smaller
// discount, so gains far beyond breakeven are sold closer to notional.
type Curve struct {
	FastCutoff         decimal.Decimal `json:"fast_cutoff"`
	TerminalCutoff     decimal.Decimal `json:"terminal_cutoff"`
	FastMultiplier     decimal.Decimal `json:"fast_multiplier"`
	TerminalMultiplier decimal.Decimal `json:"terminal_multiplier"`
}

// DefaultCurve the shipped curve parameters
func DefaultCurve() Curve {
	return Curve{
		FastCutoff:         decimal.NewFromFloat(1.03),
		TerminalCutoff:     decimal.NewFromFloat(1.10),
		FastMultiplier:     decimal.NewFromFloat(0.97),
		TerminalMultiplier: decimal.NewFromFloat(0.99),
	}
}

// Validate reject parameters out of the allowed ordering
func (c Curve) Validate() error {
	one := decimal.NewFromInt(1)

	if c.FastCutoff.LessThanOrEqual(Breakeven) || c.TerminalCutoff.LessThanOrEqual(c.FastCutoff) {
		return core.ErrInvalidCurveParams
	}

	if c.FastMultiplier.LessThanOrEqual(decimal.Zero) || c.FastMultiplier.GreaterThan(one) {
		return core.ErrInvalidCurveParams
	}

	if c.TerminalMultiplier.GreaterThan(one) || c.TerminalMultiplier.LessThan(c.FastMultiplier) {
		return core.ErrInvalidCurveParams
	}

	return nil
}

// Price the auction cost for collateral worth marketValue against a
// position bought for amountPaid, and the gain retained by the ledger.
//
// Positions at or below cost are sold at full notional; cost never
// falls below amountPaid regardless of parameters.
func (c Curve) Price(amountPaid, marketValue decimal.Decimal) (cost, retainedGain decimal.Decimal) {
	gainRatio := marketValue.Div(amountPaid).Truncate(MaxPrecision)

	if gainRatio.LessThan(c.FastCutoff) {
		return amountPaid, decimal.Zero
	}

	multiplier := c.FastMultiplier
	if gainRatio.GreaterThan(c.TerminalCutoff) {
		multiplier = c.TerminalMultiplier
	}

	cost = marketValue.Mul(multiplier).Truncate(MaxPrecision)
	if cost.LessThan(amountPaid) {
		cost = amountPaid
	}

	return cost, cost.Sub(amountPaid)
}
