package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// AuctionRecord history row written by every completed buy-all
type AuctionRecord struct {
	ID           uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID      string          `sql:"size:36;unique_index:auction_trace_idx" json:"trace_id"`
	Caller       string          `sql:"size:36" json:"caller"`
	DeltaDeposit decimal.Decimal `sql:"type:decimal(32,18)" json:"delta_deposit"`
	MarketValue  decimal.Decimal `sql:"type:decimal(32,18)" json:"market_value"`
	Cost         decimal.Decimal `sql:"type:decimal(32,18)" json:"cost"`
	RetainedGain decimal.Decimal `sql:"type:decimal(32,18)" json:"retained_gain"`
	Fee          decimal.Decimal `sql:"type:decimal(32,18)" json:"fee"`
	FeeShares    decimal.Decimal `sql:"type:decimal(32,18)" json:"fee_shares"`
	Claimed      pq.StringArray  `sql:"type:varchar(1024)" json:"claimed"`
	Content      types.JSONText  `sql:"type:varchar(1024)" json:"content,omitempty"`
	CreatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IAuctionStore auction record store interface
type IAuctionStore interface {
	Create(ctx context.Context, tx *db.DB, record *AuctionRecord) error
	List(ctx context.Context, limit int) ([]*AuctionRecord, error)
}

// AuctionPreview dry-run result of the discount pricing against the
// pool's current unclaimed gains
type AuctionPreview struct {
	DeltaDeposit decimal.Decimal `json:"delta_deposit"`
	MarketValue  decimal.Decimal `json:"market_value"`
	Cost         decimal.Decimal `json:"cost"`
	RetainedGain decimal.Decimal `json:"retained_gain"`
	Indices      []int           `json:"indices"`
}

// IAuctionService the permissionless collateral auction
type IAuctionService interface {
	BuyAll(ctx context.Context, caller string) (*AuctionRecord, error)
	Preview(ctx context.Context) (*AuctionPreview, error)
}
