package reward

import (
	"context"

	"vault/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type rewardStore struct {
	db *db.DB
}

// New new reward store
func New(db *db.DB) core.IRewardStore {
	return &rewardStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		if err := db.Update().Model(core.RewardState{}).AutoMigrate(core.RewardState{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.AccountReward{}).AutoMigrate(core.AccountReward{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *rewardStore) States(ctx context.Context) ([]*core.RewardState, error) {
	var states []*core.RewardState
	if err := s.db.View().Order("channel ASC").Find(&states).Error; err != nil {
		return nil, err
	}

	// all three slots exist even before the first refresh
	if len(states) < core.ChannelCount {
		existing := make(map[core.RewardChannel]bool, len(states))
		for _, state := range states {
			existing[state.Channel] = true
		}

		for _, ch := range core.Channels() {
			if !existing[ch] {
				states = append(states, &core.RewardState{
					Channel:  ch,
					Rate:     decimal.Zero,
					Integral: decimal.Zero,
				})
			}
		}
	}

	return states, nil
}

func (s *rewardStore) SaveState(ctx context.Context, tx *db.DB, state *core.RewardState) error {
	return tx.Update().Where("channel=?", state.Channel).
		Assign(map[string]interface{}{
			"rate":     state.Rate,
			"integral": state.Integral,
		}).
		FirstOrCreate(state).Error
}

func (s *rewardStore) AccountRewards(ctx context.Context, account string) ([]*core.AccountReward, error) {
	var rewards []*core.AccountReward
	if err := s.db.View().Where("account=?", account).Order("channel ASC").Find(&rewards).Error; err != nil {
		return nil, err
	}

	return rewards, nil
}

func (s *rewardStore) SaveAccountReward(ctx context.Context, tx *db.DB, reward *core.AccountReward) error {
	return tx.Update().Where("account=? and channel=?", reward.Account, reward.Channel).
		Assign(map[string]interface{}{
			"integral_for": reward.IntegralFor,
			"pending":      reward.Pending,
		}).
		FirstOrCreate(reward).Error
}
