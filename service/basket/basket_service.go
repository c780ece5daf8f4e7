package basket

import (
	"context"

	"vault/core"
	"vault/internal/vault"
	"vault/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

// Service the liquid locker basket: a round-robin mint / pro-rata
// redemption aggregator over a fixed list of external reward tokens.
// The sum of all tracked balances equals the basket's issued supply
// after every operation.
type Service struct {
	cfg           *core.Config
	db            *db.DB
	lockerStore   core.ILockerStore
	transferStore core.ITransferStore
	walletService core.IWalletService
}

// New new basket service
func New(
	cfg *core.Config,
	db *db.DB,
	lockerStr core.ILockerStore,
	transferStr core.ITransferStore,
	walletSrv core.IWalletService,
) core.IBasketService {
	return &Service{
		cfg:           cfg,
		db:            db,
		lockerStore:   lockerStr,
		transferStore: transferStr,
		walletService: walletSrv,
	}
}

// NextLocker the locker the cursor currently points at
func (s *Service) NextLocker(ctx context.Context) (*core.LiquidLocker, error) {
	basket, err := s.lockerStore.Basket(ctx)
	if err != nil {
		return nil, err
	}

	locker, err := s.lockerStore.Find(ctx, basket.LockerIndex)
	if err != nil {
		return nil, err
	}

	return locker, nil
}

// Mint issue amount basket units against the locker at the cursor.
// The locker token must already have been transferred in: the raw
// balance has to cover the tracked balance plus the mint. Restricted
// to the owning reward engine.
func (s *Service) Mint(ctx context.Context, caller string, amount decimal.Decimal) error {
	if caller != s.cfg.App.VaultAddress {
		return core.ErrOperationForbidden
	}

	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	basket, err := s.lockerStore.Basket(ctx)
	if err != nil {
		return err
	}

	locker, err := s.lockerStore.Find(ctx, basket.LockerIndex)
	if err != nil {
		return err
	}

	raw, err := s.walletService.AssetBalance(ctx, locker.AssetID, locker.Receiver)
	if err != nil {
		return err
	}

	if raw.LessThan(locker.TrackedBalance.Add(amount)) {
		return core.ErrMintNotFunded
	}

	lockers, err := s.lockerStore.All(ctx)
	if err != nil {
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		locker.TrackedBalance = locker.TrackedBalance.Add(amount)
		if err := s.lockerStore.Update(ctx, tx, locker); err != nil {
			return err
		}

		basket.TotalSupply = basket.TotalSupply.Add(amount)
		basket.LockerIndex = vault.NextMintIndex(lockers, basket.LockerIndex)

		return s.lockerStore.UpdateBasket(ctx, tx, basket)
	})
}

// Redeem burn amount basket units and withdraw every locker's
// pro-rata share. Tracked balances always drop, preserving 1:1
// backing; the underlying transfers out only where RedeemActive is
// set, so a frozen token forfeits that portion without breaking the
// accounting for the rest.
func (s *Service) Redeem(ctx context.Context, caller, receiver string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("service", "basket")

	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	basket, err := s.lockerStore.Basket(ctx)
	if err != nil {
		return err
	}

	if basket.TotalSupply.LessThan(amount) {
		return core.ErrInsufficientBasket
	}

	lockers, err := s.lockerStore.All(ctx)
	if err != nil {
		return err
	}

	supplyBefore := basket.TotalSupply
	trace := id.GenTraceID()

	// the caller surrenders the basket units up front; a failed pull
	// aborts before anything burns
	if err := s.walletService.Pull(ctx, uuid.Modify(trace, "surrender"), s.cfg.App.BasketAssetID, caller, amount); err != nil {
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		for _, locker := range lockers {
			withdrawn := vault.RedeemPortion(locker.TrackedBalance, amount, supplyBefore)
			if !withdrawn.IsPositive() {
				continue
			}

			locker.TrackedBalance = locker.TrackedBalance.Sub(withdrawn)
			if err := s.lockerStore.Update(ctx, tx, locker); err != nil {
				return err
			}

			if !locker.RedeemActive {
				log.Infoln("redeem disabled, forfeiting", locker.Symbol, withdrawn)
				continue
			}

			transfer := &core.Transfer{
				TraceID:    uuid.Modify(trace, "redeem:"+locker.AssetID),
				OpponentID: receiver,
				AssetID:    locker.AssetID,
				Amount:     withdrawn,
				Memo:       "basket redeem",
			}
			if err := s.transferStore.Create(ctx, tx, transfer); err != nil {
				return err
			}
		}

		basket.TotalSupply = basket.TotalSupply.Sub(amount)

		return s.lockerStore.UpdateBasket(ctx, tx, basket)
	})
}

// Configure update a locker's receiver and flags. Rejected if it would
// leave no locker accepting mints.
func (s *Service) Configure(ctx context.Context, caller string, index int, receiver string, mintActive, redeemActive bool) error {
	if !s.cfg.IsAdmin(caller) {
		return core.ErrOperationForbidden
	}

	lockers, err := s.lockerStore.All(ctx)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(lockers) {
		return core.ErrLockerNotFound
	}

	locker := lockers[index]
	if locker.MintActive && !mintActive && vault.ActiveMintCount(lockers) <= 1 {
		return core.ErrLastActiveLocker
	}

	basket, err := s.lockerStore.Basket(ctx)
	if err != nil {
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		locker.Receiver = receiver
		locker.MintActive = mintActive
		locker.RedeemActive = redeemActive
		if err := s.lockerStore.Update(ctx, tx, locker); err != nil {
			return err
		}

		// the cursor must keep pointing at a mint-active locker
		if basket.LockerIndex == index && !mintActive {
			basket.LockerIndex = vault.NextMintIndex(lockers, index)
			return s.lockerStore.UpdateBasket(ctx, tx, basket)
		}

		return nil
	})
}

// Sweep transfer out any locker token balance beyond the tracked
// amount: airdrops and accidental transfers, never the backing.
func (s *Service) Sweep(ctx context.Context, caller string, index int, receiver string) error {
	if !s.cfg.IsAdmin(caller) {
		return core.ErrOperationForbidden
	}

	locker, err := s.lockerStore.Find(ctx, index)
	if err != nil {
		return err
	}

	raw, err := s.walletService.AssetBalance(ctx, locker.AssetID, locker.Receiver)
	if err != nil {
		return err
	}

	excess := raw.Sub(locker.TrackedBalance)
	if !excess.IsPositive() {
		return nil
	}

	return s.db.Tx(func(tx *db.DB) error {
		transfer := &core.Transfer{
			TraceID:    id.GenTraceID(),
			OpponentID: receiver,
			AssetID:    locker.AssetID,
			Amount:     excess,
			Memo:       "basket sweep",
		}

		return s.transferStore.Create(ctx, tx, transfer)
	})
}
