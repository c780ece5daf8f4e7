package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// ClaimResult amounts paid out by one distributor pull
type ClaimResult struct {
	PrimaryAmount decimal.Decimal `json:"primary_amount"`
	AssetAmount   decimal.Decimal `json:"asset_amount"`
}

// IDistributorService the external reward distributor.
//
// Claim may fail; the weekly refresh treats a failure as a soft no-op
// and every other caller must not exist.
type IDistributorService interface {
	Pending(ctx context.Context, receiver string) (decimal.Decimal, error)
	Claim(ctx context.Context, receiver, delegate string, sources []string, maxFeeBps int) (*ClaimResult, error)
}
