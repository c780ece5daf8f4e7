package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// RewardChannel one of the three independent reward streams
type RewardChannel int

const (
	// ChannelLocked basket units minted from locked primary rewards
	ChannelLocked RewardChannel = iota
	// ChannelPrimary the raw primary reward token, claimable only while
	// the configured lock duration is zero
	ChannelPrimary
	// ChannelAsset the vault's own asset token
	ChannelAsset

	// ChannelCount number of channels
	ChannelCount = 3
)

func (c RewardChannel) String() string {
	switch c {
	case ChannelLocked:
		return "locked"
	case ChannelPrimary:
		return "primary"
	case ChannelAsset:
		return "asset"
	}
	return "unknown"
}

// Channels all reward channels in slot order
func Channels() []RewardChannel {
	return []RewardChannel{ChannelLocked, ChannelPrimary, ChannelAsset}
}

// RewardState per-channel global accrual state. Integral is the
// cumulative reward-per-share accumulator and never decreases.
type RewardState struct {
	Channel   RewardChannel   `sql:"PRIMARY_KEY" json:"channel"`
	Rate      decimal.Decimal `sql:"type:decimal(32,18)" json:"rate"`
	Integral  decimal.Decimal `sql:"type:decimal(32,18)" json:"integral"`
	Version   int64           `sql:"default:0" json:"version"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// AccountReward per-account, per-channel snapshot and unclaimed balance
type AccountReward struct {
	Account     string          `sql:"size:36;PRIMARY_KEY" json:"account"`
	Channel     RewardChannel   `sql:"PRIMARY_KEY" json:"channel"`
	IntegralFor decimal.Decimal `sql:"type:decimal(32,18)" json:"integral_for"`
	Pending     decimal.Decimal `sql:"type:decimal(32,18)" json:"pending"`
	Version     int64           `sql:"default:0" json:"version"`
	UpdatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IRewardStore reward state store interface
type IRewardStore interface {
	States(ctx context.Context) ([]*RewardState, error)
	SaveState(ctx context.Context, tx *db.DB, state *RewardState) error
	AccountRewards(ctx context.Context, account string) ([]*AccountReward, error)
	SaveAccountReward(ctx context.Context, tx *db.DB, reward *AccountReward) error
}

// ClaimedRewards per-channel amounts paid out by a claim
type ClaimedRewards struct {
	Locked  decimal.Decimal `json:"locked"`
	Primary decimal.Decimal `json:"primary"`
	Asset   decimal.Decimal `json:"asset"`
}

// IRewardService the reward accrual engine.
//
// Synchronize must run before any operation that reads or changes an
// account balance, and with the zero account before any operation that
// changes the total share supply.
type IRewardService interface {
	Synchronize(ctx context.Context, tx *db.DB, vault *Vault, account string) error
	Claim(ctx context.Context, account, receiver string) (*ClaimedRewards, error)
	ClaimFor(ctx context.Context, caller, account, receiver string) (*ClaimedRewards, error)
	Claimable(ctx context.Context, account string) (*ClaimedRewards, error)
	FetchRewards(ctx context.Context, extraDelegate string) error
}
