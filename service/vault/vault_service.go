package vault

import (
	"context"

	"vault/core"
	vaultmath "vault/internal/vault"
	"vault/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Service deposit ledger operations. Every operation synchronizes the
// reward integrals for the affected accounts before it touches a
// balance, and refuses to run while the ledger's deposits disagree
// with the pool's compounded balance (only an auction can unlock that
// state).
type Service struct {
	db            *db.DB
	vaultStore    core.IVaultStore
	accountStore  core.IAccountStore
	rewardService core.IRewardService
	poolService   core.IPoolService
	walletService core.IWalletService
	cfg           *core.Config
}

// New new vault service
func New(
	cfg *core.Config,
	db *db.DB,
	vaultStr core.IVaultStore,
	accountStr core.IAccountStore,
	rewardSrv core.IRewardService,
	poolSrv core.IPoolService,
	walletSrv core.IWalletService,
) core.IVaultService {
	return &Service{
		db:            db,
		vaultStore:    vaultStr,
		accountStore:  accountStr,
		rewardService: rewardSrv,
		poolService:   poolSrv,
		walletService: walletSrv,
		cfg:           cfg,
	}
}

// Deposit pull amount of the vault asset from the account, push it
// into the pool and issue shares 1:1 against backing
func (s *Service) Deposit(ctx context.Context, account string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("service", "vault")

	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	v, err := s.unlocked(ctx)
	if err != nil {
		return err
	}

	if err := s.walletService.Pull(ctx, id.GenTraceID(), s.cfg.App.AssetID, account, amount); err != nil {
		return err
	}

	if err := s.poolService.Deposit(ctx, amount); err != nil {
		return err
	}

	err = s.db.Tx(func(tx *db.DB) error {
		// supply is about to change
		if err := s.rewardService.Synchronize(ctx, tx, v, account); err != nil {
			return err
		}

		acc, err := s.accountStore.FindOrCreate(ctx, tx, account)
		if err != nil {
			return err
		}

		shares := amount
		if v.TotalShares.IsPositive() && v.Deposits.IsPositive() {
			shares = amount.Mul(v.TotalShares).Div(v.Deposits).Truncate(vaultmath.MaxPrecision)
		}

		acc.Shares = acc.Shares.Add(shares)
		if err := s.accountStore.Update(ctx, tx, acc); err != nil {
			return err
		}

		v.TotalShares = v.TotalShares.Add(shares)
		v.Deposits = v.Deposits.Add(amount)

		return s.vaultStore.Update(ctx, tx, v)
	})
	if err != nil {
		log.WithError(err).Errorln("deposit failed")
		return err
	}

	return nil
}

// Withdraw burn shares and release the backing asset from the pool to
// the receiver
func (s *Service) Withdraw(ctx context.Context, account, receiver string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	v, err := s.unlocked(ctx)
	if err != nil {
		return err
	}

	err = s.db.Tx(func(tx *db.DB) error {
		if err := s.rewardService.Synchronize(ctx, tx, v, account); err != nil {
			return err
		}

		acc, err := s.accountStore.Find(ctx, account)
		if err != nil {
			return err
		}

		if acc.Shares.LessThan(amount) {
			return core.ErrInsufficientShares
		}

		released := amount.Mul(v.Deposits).Div(v.TotalShares).Truncate(vaultmath.MaxPrecision)

		acc.Shares = acc.Shares.Sub(amount)
		if err := s.accountStore.Update(ctx, tx, acc); err != nil {
			return err
		}

		v.TotalShares = v.TotalShares.Sub(amount)
		v.Deposits = v.Deposits.Sub(released)

		if err := s.vaultStore.Update(ctx, tx, v); err != nil {
			return err
		}

		return s.poolService.Withdraw(ctx, receiver, released)
	})

	return err
}

// Transfer move shares between accounts; both ends synchronize before
// balances change
func (s *Service) Transfer(ctx context.Context, from, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if from == to {
		return core.ErrOperationForbidden
	}

	v, err := s.vaultStore.Get(ctx)
	if err != nil {
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.rewardService.Synchronize(ctx, tx, v, from); err != nil {
			return err
		}
		if err := s.rewardService.Synchronize(ctx, tx, v, to); err != nil {
			return err
		}

		sender, err := s.accountStore.Find(ctx, from)
		if err != nil {
			return err
		}

		if sender.Shares.LessThan(amount) {
			return core.ErrInsufficientShares
		}

		recipient, err := s.accountStore.FindOrCreate(ctx, tx, to)
		if err != nil {
			return err
		}

		sender.Shares = sender.Shares.Sub(amount)
		if err := s.accountStore.Update(ctx, tx, sender); err != nil {
			return err
		}

		recipient.Shares = recipient.Shares.Add(amount)
		if err := s.accountStore.Update(ctx, tx, recipient); err != nil {
			return err
		}

		// total supply unchanged, but the integrals advanced
		return s.vaultStore.Update(ctx, tx, v)
	})
}

// unlocked load the vault and verify its deposits match the pool's
// compounded balance
func (s *Service) unlocked(ctx context.Context) (*core.Vault, error) {
	v, err := s.vaultStore.Get(ctx)
	if err != nil {
		return nil, err
	}

	compounded, err := s.poolService.CompoundedBalance(ctx)
	if err != nil {
		return nil, err
	}

	if !v.Deposits.Equal(compounded) {
		return nil, core.ErrVaultLocked
	}

	return v, nil
}
