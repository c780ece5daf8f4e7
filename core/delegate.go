package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// NoDelegate sentinel meaning the reward pull runs without a delegate
const NoDelegate = ""

// FeeRejected sentinel fee meaning the delegate refuses the claim
var FeeRejected = decimal.NewFromInt(-1)

// BoostDelegate a registered boost delegate. Delegates with a
// forwarding callback configured are a deliberate, audited trust
// boundary; ad-hoc extra candidates must never have one.
type BoostDelegate struct {
	ID          uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Address     string    `sql:"size:36;unique_index:delegate_address_idx" json:"address"`
	HasCallback bool      `sql:"default:false" json:"has_callback"`
	Enabled     bool      `sql:"default:true" json:"enabled"`
	CreatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IDelegateStore delegate store interface
type IDelegateStore interface {
	All(ctx context.Context) ([]*BoostDelegate, error)
	Find(ctx context.Context, address string) (*BoostDelegate, error)
	Save(ctx context.Context, delegate *BoostDelegate) error
}

// IFeeQuoteService external fee-quote interface. Quote returns the fee
// percentage out of 10000, or FeeRejected.
type IFeeQuoteService interface {
	Quote(ctx context.Context, claimant, receiver, delegate string, amount decimal.Decimal) (decimal.Decimal, error)
}

// IBoostRegistryService boost delegation registry
type IBoostRegistryService interface {
	HasCallback(ctx context.Context, address string) (bool, error)
	LockDuration(ctx context.Context) (int64, error)
}

// IDelegateSelector picks the delegate achieving the best net payout
type IDelegateSelector interface {
	SelectBest(ctx context.Context, claimant, receiver string, amount decimal.Decimal, extra string) (string, decimal.Decimal, error)
}
