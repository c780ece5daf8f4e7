package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Vault the shared deposit ledger. A single row tracks the total
// backing deposits and the issued share supply, together with the
// bounds of the currently active reward distribution window.
//
// Deposits is authoritative until the next auction reconciles it
// against the pool's compounded balance; while the two disagree the
// vault is locked (deposits and withdrawals rejected, auctions allowed).
type Vault struct {
	ID           uint64          `sql:"PRIMARY_KEY" json:"id"`
	AssetID      string          `sql:"size:36" json:"asset_id"`
	ShareAssetID string          `sql:"size:36" json:"share_asset_id"`
	Deposits     decimal.Decimal `sql:"type:decimal(32,18)" json:"deposits"`
	TotalShares  decimal.Decimal `sql:"type:decimal(32,18)" json:"total_shares"`
	LastUpdate   int64           `sql:"default:0" json:"last_update"`
	PeriodFinish int64           `sql:"default:0" json:"period_finish"`
	// discount curve parameters, gain ratios ascending, multipliers in (0,1]
	FastCutoff         decimal.Decimal `sql:"type:decimal(20,8)" json:"fast_cutoff"`
	TerminalCutoff     decimal.Decimal `sql:"type:decimal(20,8)" json:"terminal_cutoff"`
	FastMultiplier     decimal.Decimal `sql:"type:decimal(20,8)" json:"fast_multiplier"`
	TerminalMultiplier decimal.Decimal `sql:"type:decimal(20,8)" json:"terminal_multiplier"`
	// fixed weekly top-up credited to the asset reward channel
	TopUpAccount string          `sql:"size:36" json:"top_up_account"`
	TopUpAmount  decimal.Decimal `sql:"type:decimal(32,18)" json:"top_up_amount"`
	Version      int64           `sql:"default:0" json:"version"`
	CreatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IVaultStore vault store interface
type IVaultStore interface {
	Get(ctx context.Context) (*Vault, error)
	Save(ctx context.Context, tx *db.DB, vault *Vault) error
	Update(ctx context.Context, tx *db.DB, vault *Vault) error
}

// IVaultService deposit ledger operations
type IVaultService interface {
	Deposit(ctx context.Context, account string, amount decimal.Decimal) error
	Withdraw(ctx context.Context, account, receiver string, amount decimal.Decimal) error
	Transfer(ctx context.Context, from, to string, amount decimal.Decimal) error
}
