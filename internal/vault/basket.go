package vault

import (
	"vault/core"

	"github.com/shopspring/decimal"
)

// NextMintIndex the cursor position after a mint at current: the next
// locker forward (wrapping) with MintActive set. With no other active
// locker the cursor stays where it is.
func NextMintIndex(lockers []*core.LiquidLocker, current int) int {
	n := len(lockers)
	if n == 0 {
		return current
	}

	for step := 1; step <= n; step++ {
		idx := (current + step) % n
		if lockers[idx].MintActive {
			return idx
		}
	}

	return current
}

// ActiveMintCount lockers currently accepting mints
func ActiveMintCount(lockers []*core.LiquidLocker) int {
	count := 0
	for _, locker := range lockers {
		if locker.MintActive {
			count++
		}
	}

	return count
}

// RedeemPortion the underlying amount one locker surrenders when
// amount basket units are redeemed against supply
func RedeemPortion(tracked, amount, supply decimal.Decimal) decimal.Decimal {
	if tracked.LessThanOrEqual(decimal.Zero) || supply.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return amount.Mul(tracked).Div(supply).Truncate(MaxPrecision)
}
