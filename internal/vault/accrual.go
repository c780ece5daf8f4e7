package vault

import (
	"github.com/shopspring/decimal"
)

// Elapsed accruable seconds since the last update, capped at the end
// of the active period
func Elapsed(now, lastUpdate, periodFinish int64) int64 {
	if now > periodFinish {
		now = periodFinish
	}

	if now <= lastUpdate {
		return 0
	}

	return now - lastUpdate
}

// AdvanceIntegral the reward-per-share integral after elapsed seconds
// of emission at rate over supply. Supply or rate at zero leaves the
// integral unchanged.
func AdvanceIntegral(integral, rate decimal.Decimal, elapsed int64, supply decimal.Decimal) decimal.Decimal {
	if elapsed <= 0 || rate.LessThanOrEqual(decimal.Zero) || supply.LessThanOrEqual(decimal.Zero) {
		return integral
	}

	earned := rate.Mul(decimal.NewFromInt(elapsed))
	return integral.Add(earned.Div(supply).Truncate(MaxPrecision))
}

// Owed the amount a balance has accrued between its snapshot integral
// and the current one
func Owed(balance, integral, integralFor decimal.Decimal) decimal.Decimal {
	if balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	delta := integral.Sub(integralFor)
	if delta.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return balance.Mul(delta).Truncate(MaxPrecision)
}

// CarryForward the unpaid remainder of the prior period at the old rate
func CarryForward(rate decimal.Decimal, now, periodFinish int64) decimal.Decimal {
	if now >= periodFinish || rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return rate.Mul(decimal.NewFromInt(periodFinish - now))
}

// NewRate the constant emission rate spreading amount over one period
func NewRate(amount decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return amount.Div(decimal.NewFromInt(SecondsPerWeek)).Truncate(MaxPrecision)
}
