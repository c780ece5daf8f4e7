package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ZeroAccount sentinel used for supply-only reward synchronization
const ZeroAccount = ""

// Account a share holder
type Account struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Address   string          `sql:"size:36;unique_index:account_address_idx" json:"address"`
	Shares    decimal.Decimal `sql:"type:decimal(32,18)" json:"shares"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ClaimApproval claim-on-behalf approval flag, set by the account
// owner or an administrator
type ClaimApproval struct {
	Account   string    `sql:"size:36;PRIMARY_KEY" json:"account"`
	Operator  string    `sql:"size:36;PRIMARY_KEY" json:"operator"`
	Approved  bool      `sql:"default:false" json:"approved"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IAccountStore account store interface
type IAccountStore interface {
	Find(ctx context.Context, address string) (*Account, error)
	FindOrCreate(ctx context.Context, tx *db.DB, address string) (*Account, error)
	Update(ctx context.Context, tx *db.DB, account *Account) error
	All(ctx context.Context) ([]*Account, error)
	SetApproval(ctx context.Context, account, operator string, approved bool) error
	IsApproved(ctx context.Context, account, operator string) (bool, error)
}
