package reward

import (
	"context"
	"fmt"
	"time"

	"vault/core"
	"vault/internal/vault"
	"vault/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// FetchRewards pull a fresh week of emissions from the external
// distributor and roll the per-channel rates over to a new period.
//
// Gated to at most once per calendar week. The distributor call is the
// one soft-fail site: on failure nothing changes and the fetch is
// retried the next eligible week.
func (s *Service) FetchRewards(ctx context.Context, extraDelegate string) error {
	log := logger.FromContext(ctx).WithField("service", "reward")
	now := time.Now().Unix()

	v, err := s.vaultStore.Get(ctx)
	if err != nil {
		return err
	}

	if vault.SameWeek(now, v.PeriodFinish) {
		return core.ErrFetchTooSoon
	}

	if extraDelegate != core.NoDelegate {
		// a callback-capable extra candidate is a known proxy pattern
		hasCallback, err := s.boostRegistry.HasCallback(ctx, extraDelegate)
		if err != nil {
			return err
		}

		if hasCallback {
			return core.ErrDelegateHasCallback
		}
	}

	lockDuration, err := s.boostRegistry.LockDuration(ctx)
	if err != nil {
		return err
	}

	var (
		receiver = s.cfg.App.VaultAddress
		delegate = core.NoDelegate
		locker   *core.LiquidLocker
	)

	if lockDuration == 0 {
		pending, err := s.distributor.Pending(ctx, receiver)
		if err != nil {
			return err
		}

		delegate, _, err = s.delegateSelector.SelectBest(ctx, receiver, receiver, pending, extraDelegate)
		if err != nil {
			return err
		}
	} else {
		locker, err = s.basketService.NextLocker(ctx)
		if err != nil {
			return err
		}
		receiver = locker.Receiver
	}

	sources, err := s.claimSources(ctx)
	if err != nil {
		return err
	}

	result, err := s.distributor.Claim(ctx, receiver, delegate, sources, s.cfg.Distributor.MaxFeeBps)
	if err != nil {
		// soft no-op: rates and period bounds stay untouched
		log.WithError(err).Warningln("distributor claim failed, skipping refresh")
		return nil
	}

	amounts := map[core.RewardChannel]decimal.Decimal{
		core.ChannelLocked:  decimal.Zero,
		core.ChannelPrimary: decimal.Zero,
		core.ChannelAsset:   result.AssetAmount,
	}

	if lockDuration == 0 {
		amounts[core.ChannelPrimary] = result.PrimaryAmount
	} else if result.PrimaryAmount.IsPositive() {
		// the fetched tokens sit with the receiving locker; mint them
		// into the basket and stream basket units instead
		if err := s.basketService.Mint(ctx, s.cfg.App.VaultAddress, result.PrimaryAmount); err != nil {
			return err
		}
		amounts[core.ChannelLocked] = result.PrimaryAmount
	}

	if v.TopUpAmount.IsPositive() && v.TopUpAccount != "" {
		// deterministic per week so a retried fetch never double-debits
		trace := id.TraceIDFrom(fmt.Sprintf("topup:%d", vault.Week(now)))
		if err := s.walletService.Pull(ctx, trace, s.cfg.App.AssetID, v.TopUpAccount, v.TopUpAmount); err != nil {
			return err
		}
		amounts[core.ChannelAsset] = amounts[core.ChannelAsset].Add(v.TopUpAmount)
	}

	states, err := s.rewardStore.States(ctx)
	if err != nil {
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		// supply-only synchronization folded into the same pass: the
		// integrals advance at the old rate up to min(now, periodFinish)
		// before the new rate takes over
		elapsed := vault.Elapsed(now, v.LastUpdate, v.PeriodFinish)

		for _, state := range states {
			state.Integral = vault.AdvanceIntegral(state.Integral, state.Rate, elapsed, v.TotalShares)

			total := amounts[state.Channel].Add(vault.CarryForward(state.Rate, now, v.PeriodFinish))
			state.Rate = vault.NewRate(total)
			if err := s.rewardStore.SaveState(ctx, tx, state); err != nil {
				return err
			}
		}

		v.LastUpdate = now
		v.PeriodFinish = now + vault.SecondsPerWeek

		return s.vaultStore.Update(ctx, tx, v)
	})
}

// claimSources distributor sources are the targets of the enabled
// reward adapters; the configured list only serves until the first
// adapter is registered
func (s *Service) claimSources(ctx context.Context) ([]string, error) {
	adapters, err := s.adapterStore.All(ctx)
	if err != nil {
		return nil, err
	}

	var sources []string
	for _, adapter := range adapters {
		if adapter.Enabled {
			sources = append(sources, adapter.Target)
		}
	}

	if len(sources) == 0 {
		sources = s.cfg.Distributor.Sources
	}

	return sources, nil
}
