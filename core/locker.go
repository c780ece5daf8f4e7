package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// LiquidLocker one external locked-reward token tracked by the basket.
// TrackedBalance is the amount attributed to the basket, distinct from
// the raw token balance which may include unrelated transfers.
type LiquidLocker struct {
	ID             uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID        string          `sql:"size:36;unique_index:locker_asset_idx" json:"asset_id"`
	Symbol         string          `sql:"size:20" json:"symbol"`
	Receiver       string          `sql:"size:36" json:"receiver"`
	TrackedBalance decimal.Decimal `sql:"type:decimal(32,18)" json:"tracked_balance"`
	MintActive     bool            `sql:"default:true" json:"mint_active"`
	RedeemActive   bool            `sql:"default:true" json:"redeem_active"`
	Version        int64           `sql:"default:0" json:"version"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Basket the round-robin aggregator over the lockers. LockerIndex
// always points at a locker with MintActive set; TotalSupply equals
// the sum of all tracked balances after every operation.
type Basket struct {
	ID          uint64          `sql:"PRIMARY_KEY" json:"id"`
	AssetID     string          `sql:"size:36" json:"asset_id"`
	LockerIndex int             `sql:"default:0" json:"locker_index"`
	TotalSupply decimal.Decimal `sql:"type:decimal(32,18)" json:"total_supply"`
	Version     int64           `sql:"default:0" json:"version"`
	UpdatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ILockerStore locker store interface
type ILockerStore interface {
	All(ctx context.Context) ([]*LiquidLocker, error)
	Find(ctx context.Context, index int) (*LiquidLocker, error)
	Save(ctx context.Context, tx *db.DB, locker *LiquidLocker) error
	Update(ctx context.Context, tx *db.DB, locker *LiquidLocker) error
	Basket(ctx context.Context) (*Basket, error)
	UpdateBasket(ctx context.Context, tx *db.DB, basket *Basket) error
}

// IBasketService the liquid locker basket state machine
type IBasketService interface {
	NextLocker(ctx context.Context) (*LiquidLocker, error)
	Mint(ctx context.Context, caller string, amount decimal.Decimal) error
	Redeem(ctx context.Context, caller, receiver string, amount decimal.Decimal) error
	Configure(ctx context.Context, caller string, index int, receiver string, mintActive, redeemActive bool) error
	Sweep(ctx context.Context, caller string, index int, receiver string) error
}
