package reward

import (
	"context"
	"time"

	"vault/core"
	"vault/internal/vault"
	"vault/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

// Service the reward accrual engine
type Service struct {
	cfg              *core.Config
	db               *db.DB
	vaultStore       core.IVaultStore
	rewardStore      core.IRewardStore
	accountStore     core.IAccountStore
	transferStore    core.ITransferStore
	adapterStore     core.IAdapterStore
	basketService    core.IBasketService
	delegateSelector core.IDelegateSelector
	boostRegistry    core.IBoostRegistryService
	distributor      core.IDistributorService
	walletService    core.IWalletService
}

// New new reward service
func New(
	cfg *core.Config,
	db *db.DB,
	vaultStr core.IVaultStore,
	rewardStr core.IRewardStore,
	accountStr core.IAccountStore,
	transferStr core.ITransferStore,
	adapterStr core.IAdapterStore,
	basketSrv core.IBasketService,
	selector core.IDelegateSelector,
	boostRegistry core.IBoostRegistryService,
	distributor core.IDistributorService,
	walletSrv core.IWalletService,
) core.IRewardService {
	return &Service{
		cfg:              cfg,
		db:               db,
		vaultStore:       vaultStr,
		rewardStore:      rewardStr,
		accountStore:     accountStr,
		transferStore:    transferStr,
		adapterStore:     adapterStr,
		basketService:    basketSrv,
		delegateSelector: selector,
		boostRegistry:    boostRegistry,
		distributor:      distributor,
		walletService:    walletSrv,
	}
}

// Synchronize advance the per-channel integrals up to min(now,
// periodFinish) and settle the account's pending balances against
// them. Must run before any balance or supply change; the zero account
// performs a supply-only update.
func (s *Service) Synchronize(ctx context.Context, tx *db.DB, v *core.Vault, account string) error {
	_, err := s.synchronize(ctx, tx, v, account)
	return err
}

func (s *Service) synchronize(ctx context.Context, tx *db.DB, v *core.Vault, account string) (map[core.RewardChannel]*core.AccountReward, error) {
	now := time.Now().Unix()

	states, err := s.rewardStore.States(ctx)
	if err != nil {
		return nil, err
	}

	elapsed := vault.Elapsed(now, v.LastUpdate, v.PeriodFinish)
	if elapsed > 0 {
		for _, state := range states {
			next := vault.AdvanceIntegral(state.Integral, state.Rate, elapsed, v.TotalShares)
			if !next.Equal(state.Integral) {
				state.Integral = next
				if err := s.rewardStore.SaveState(ctx, tx, state); err != nil {
					return nil, err
				}
			}
		}

		if now > v.PeriodFinish {
			v.LastUpdate = v.PeriodFinish
		} else {
			v.LastUpdate = now
		}
	}

	if account == core.ZeroAccount {
		return nil, nil
	}

	acc, err := s.accountStore.FindOrCreate(ctx, tx, account)
	if err != nil {
		return nil, err
	}

	rewards, err := s.accountRewards(ctx, account)
	if err != nil {
		return nil, err
	}

	for _, state := range states {
		reward := rewards[state.Channel]
		owed := vault.Owed(acc.Shares, state.Integral, reward.IntegralFor)
		if owed.IsPositive() || !reward.IntegralFor.Equal(state.Integral) {
			reward.Pending = reward.Pending.Add(owed)
			reward.IntegralFor = state.Integral
			if err := s.rewardStore.SaveAccountReward(ctx, tx, reward); err != nil {
				return nil, err
			}
		}
	}

	return rewards, nil
}

// Claim settle and pay out the caller's pending rewards
func (s *Service) Claim(ctx context.Context, account, receiver string) (*core.ClaimedRewards, error) {
	return s.claim(ctx, account, receiver)
}

// ClaimFor claim on behalf of account; the caller must hold the
// account's approval flag or be an administrator
func (s *Service) ClaimFor(ctx context.Context, caller, account, receiver string) (*core.ClaimedRewards, error) {
	if !s.cfg.IsAdmin(caller) {
		approved, err := s.accountStore.IsApproved(ctx, account, caller)
		if err != nil {
			return nil, err
		}

		if !approved {
			return nil, core.ErrClaimNotApproved
		}
	}

	return s.claim(ctx, account, receiver)
}

func (s *Service) claim(ctx context.Context, account, receiver string) (*core.ClaimedRewards, error) {
	log := logger.FromContext(ctx).WithField("service", "reward")

	lockDuration, err := s.boostRegistry.LockDuration(ctx)
	if err != nil {
		return nil, err
	}

	var claimed core.ClaimedRewards
	trace := id.GenTraceID()

	err = s.db.Tx(func(tx *db.DB) error {
		v, err := s.vaultStore.Get(ctx)
		if err != nil {
			return err
		}

		rewards, err := s.synchronize(ctx, tx, v, account)
		if err != nil {
			return err
		}

		if err := s.vaultStore.Update(ctx, tx, v); err != nil {
			return err
		}

		for _, ch := range core.Channels() {
			reward := rewards[ch]
			amount := reward.Pending
			if !amount.IsPositive() {
				continue
			}

			// while rewards are locked the primary token is never
			// minted directly, so that channel stays unclaimable
			if !channelPayable(ch, lockDuration) {
				continue
			}

			reward.Pending = decimal.Zero
			if err := s.rewardStore.SaveAccountReward(ctx, tx, reward); err != nil {
				return err
			}

			transfer := &core.Transfer{
				TraceID:    uuid.Modify(trace, "reward:"+ch.String()),
				OpponentID: receiver,
				AssetID:    s.channelAsset(ch),
				Amount:     amount,
				Memo:       "reward " + ch.String(),
			}
			if err := s.transferStore.Create(ctx, tx, transfer); err != nil {
				return err
			}

			switch ch {
			case core.ChannelLocked:
				claimed.Locked = amount
			case core.ChannelPrimary:
				claimed.Primary = amount
			case core.ChannelAsset:
				claimed.Asset = amount
			}
		}

		return nil
	})
	if err != nil {
		log.WithError(err).Errorln("claim failed")
		return nil, err
	}

	return &claimed, nil
}

// Claimable read-only projection of the claim arithmetic
func (s *Service) Claimable(ctx context.Context, account string) (*core.ClaimedRewards, error) {
	now := time.Now().Unix()

	v, err := s.vaultStore.Get(ctx)
	if err != nil {
		return nil, err
	}

	acc, err := s.accountStore.Find(ctx, account)
	if err != nil {
		return nil, err
	}

	states, err := s.rewardStore.States(ctx)
	if err != nil {
		return nil, err
	}

	rewards, err := s.accountRewards(ctx, account)
	if err != nil {
		return nil, err
	}

	elapsed := vault.Elapsed(now, v.LastUpdate, v.PeriodFinish)

	var out core.ClaimedRewards
	for _, state := range states {
		integral := vault.AdvanceIntegral(state.Integral, state.Rate, elapsed, v.TotalShares)
		reward := rewards[state.Channel]
		amount := reward.Pending.Add(vault.Owed(acc.Shares, integral, reward.IntegralFor))

		switch state.Channel {
		case core.ChannelLocked:
			out.Locked = amount
		case core.ChannelPrimary:
			out.Primary = amount
		case core.ChannelAsset:
			out.Asset = amount
		}
	}

	return &out, nil
}

func (s *Service) accountRewards(ctx context.Context, account string) (map[core.RewardChannel]*core.AccountReward, error) {
	rewards, err := s.rewardStore.AccountRewards(ctx, account)
	if err != nil {
		return nil, err
	}

	out := make(map[core.RewardChannel]*core.AccountReward, core.ChannelCount)
	for _, reward := range rewards {
		out[reward.Channel] = reward
	}

	for _, ch := range core.Channels() {
		if _, ok := out[ch]; !ok {
			out[ch] = &core.AccountReward{
				Account:     account,
				Channel:     ch,
				IntegralFor: decimal.Zero,
				Pending:     decimal.Zero,
			}
		}
	}

	return out, nil
}

func (s *Service) channelAsset(ch core.RewardChannel) string {
	switch ch {
	case core.ChannelLocked:
		return s.cfg.App.BasketAssetID
	case core.ChannelPrimary:
		return s.cfg.App.PrimaryAssetID
	default:
		return s.cfg.App.AssetID
	}
}

// channelPayable whether a channel is user claimable under the current
// lock duration; the single guard shared by every claim site
func channelPayable(ch core.RewardChannel, lockDuration int64) bool {
	if ch == core.ChannelPrimary {
		return lockDuration == 0
	}

	return true
}
