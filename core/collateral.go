package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Collateral a tracked collateral asset. Index is this asset's position
// in the pool's gain-reporting vector and is kept in sync with the
// external factory listing.
type Collateral struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID   string    `sql:"size:36;unique_index:collateral_asset_idx" json:"asset_id"`
	Symbol    string    `sql:"size:20" json:"symbol"`
	Index     int       `sql:"default:0" json:"index"`
	OracleURL string    `sql:"size:256" json:"oracle_url"`
	Threshold int       `sql:"default:1" json:"threshold"`
	Enabled   bool      `sql:"default:true" json:"enabled"`
	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ICollateralStore collateral store interface
type ICollateralStore interface {
	All(ctx context.Context) ([]*Collateral, error)
	Find(ctx context.Context, assetID string) (*Collateral, error)
	ByIndex(ctx context.Context) (map[int]*Collateral, error)
	Save(ctx context.Context, tx *db.DB, collateral *Collateral) error
	Update(ctx context.Context, tx *db.DB, collateral *Collateral) error
}

// CollateralListing one factory entry
type CollateralListing struct {
	AssetID   string `json:"asset_id"`
	Symbol    string `json:"symbol"`
	Index     int    `json:"index"`
	OracleURL string `json:"oracle_url"`
}

// IFactoryService enumerates the collateral assets the external
// factory currently tracks
type IFactoryService interface {
	ListCollaterals(ctx context.Context) ([]*CollateralListing, error)
}

// PoolGain one nonzero entry of the pool's unclaimed gain vector
type PoolGain struct {
	Index  int             `json:"index"`
	Amount decimal.Decimal `json:"amount"`
}

// IPoolService the external liquidation pool
type IPoolService interface {
	UnclaimedGains(ctx context.Context) ([]decimal.Decimal, error)
	CompoundedBalance(ctx context.Context) (decimal.Decimal, error)
	Deposit(ctx context.Context, amount decimal.Decimal) error
	Withdraw(ctx context.Context, receiver string, amount decimal.Decimal) error
	ClaimCollateral(ctx context.Context, receiver string, indices []int) error
}
