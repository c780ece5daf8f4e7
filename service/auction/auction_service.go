package auction

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"vault/core"
	"vault/internal/vault"
	"vault/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Service the permissionless collateral auction: reprices the
// collateral the pool absorbed during liquidations and sells it back
// to the caller at the discount-curve price, restoring the ledger's
// backing.
type Service struct {
	cfg             *core.Config
	db              *db.DB
	vaultStore      core.IVaultStore
	accountStore    core.IAccountStore
	auctionStore    core.IAuctionStore
	collateralStore core.ICollateralStore
	poolService     core.IPoolService
	priceService    core.IPriceOracleService
	rewardService   core.IRewardService
	walletService   core.IWalletService
}

// New new auction service
func New(
	cfg *core.Config,
	db *db.DB,
	vaultStr core.IVaultStore,
	accountStr core.IAccountStore,
	auctionStr core.IAuctionStore,
	collateralStr core.ICollateralStore,
	poolSrv core.IPoolService,
	priceSrv core.IPriceOracleService,
	rewardSrv core.IRewardService,
	walletSrv core.IWalletService,
) core.IAuctionService {
	return &Service{
		cfg:             cfg,
		db:              db,
		vaultStore:      vaultStr,
		accountStore:    accountStr,
		auctionStore:    auctionStr,
		collateralStore: collateralStr,
		poolService:     poolSrv,
		priceService:    priceSrv,
		rewardService:   rewardSrv,
		walletService:   walletSrv,
	}
}

type pricing struct {
	deltaDeposit decimal.Decimal
	marketValue  decimal.Decimal
	cost         decimal.Decimal
	retainedGain decimal.Decimal
	claims       []*core.PoolGain
	indices      []int
}

// Preview dry-run the discount pricing against the pool's current
// unclaimed gains
func (s *Service) Preview(ctx context.Context) (*core.AuctionPreview, error) {
	v, err := s.vaultStore.Get(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.price(ctx, v)
	if err != nil {
		return nil, err
	}

	return &core.AuctionPreview{
		DeltaDeposit: p.deltaDeposit,
		MarketValue:  p.marketValue,
		Cost:         p.cost,
		RetainedGain: p.retainedGain,
		Indices:      p.indices,
	}, nil
}

// BuyAll sell every unclaimed collateral position to the caller at the
// curve price, pull the cost in the vault asset, feed it back into the
// pool and restore full backing. Any caller may trigger and fund the
// auction; the discount is their incentive.
func (s *Service) BuyAll(ctx context.Context, caller string) (*core.AuctionRecord, error) {
	log := logger.FromContext(ctx).WithField("service", "auction")

	v, err := s.vaultStore.Get(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.price(ctx, v)
	if err != nil {
		return nil, err
	}

	fee := vault.ProtocolFee(p.retainedGain)
	compounded := v.Deposits.Sub(p.deltaDeposit)
	newDeposits := compounded.Add(p.cost)
	feeShares := vault.FeeShares(fee, newDeposits, v.TotalShares)

	trace := id.GenTraceID()

	// the caller funds the auction up front; a failed pull aborts with
	// no state touched
	if err := s.walletService.Pull(ctx, trace, s.cfg.App.AssetID, caller, p.cost); err != nil {
		return nil, err
	}

	if err := s.poolService.Deposit(ctx, p.cost); err != nil {
		return nil, err
	}

	// the claimed per-collateral amounts ride along in the record
	content, err := json.Marshal(p.claims)
	if err != nil {
		return nil, err
	}

	record := &core.AuctionRecord{
		TraceID:      trace,
		Caller:       caller,
		DeltaDeposit: p.deltaDeposit,
		MarketValue:  p.marketValue,
		Cost:         p.cost,
		RetainedGain: p.retainedGain,
		Fee:          fee,
		FeeShares:    feeShares,
		Claimed:      indexStrings(p.indices),
		Content:      content,
	}

	err = s.db.Tx(func(tx *db.DB) error {
		// fee shares change the total supply, so integrals settle first
		if err := s.rewardService.Synchronize(ctx, tx, v, s.cfg.App.FeeReceiver); err != nil {
			return err
		}

		if feeShares.IsPositive() {
			feeAccount, err := s.accountStore.FindOrCreate(ctx, tx, s.cfg.App.FeeReceiver)
			if err != nil {
				return err
			}

			feeAccount.Shares = feeAccount.Shares.Add(feeShares)
			if err := s.accountStore.Update(ctx, tx, feeAccount); err != nil {
				return err
			}

			v.TotalShares = v.TotalShares.Add(feeShares)
		}

		v.Deposits = newDeposits
		if err := s.vaultStore.Update(ctx, tx, v); err != nil {
			return err
		}

		return s.auctionStore.Create(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}

	if err := s.poolService.ClaimCollateral(ctx, caller, p.indices); err != nil {
		log.WithError(err).Errorln("claim collateral")
		return nil, err
	}

	log.Infoln("auction settled, cost", p.cost, "gain", p.retainedGain)

	return record, nil
}

// price read the pool's gain vector, value every nonzero entry at its
// oracle spot price and run the discount curve against the unrealized
// reduction in backing
func (s *Service) price(ctx context.Context, v *core.Vault) (*pricing, error) {
	gains, err := s.poolService.UnclaimedGains(ctx)
	if err != nil {
		return nil, err
	}

	collaterals, err := s.collateralStore.ByIndex(ctx)
	if err != nil {
		return nil, err
	}

	var (
		claims  []*core.PoolGain
		indices []int
		values  = make([]decimal.Decimal, len(gains))
		now     = time.Now()
	)

	g, gctx := errgroup.WithContext(ctx)
	for idx, gain := range gains {
		if !gain.IsPositive() {
			continue
		}

		claims = append(claims, &core.PoolGain{Index: idx, Amount: gain})
		indices = append(indices, idx)

		collateral, ok := collaterals[idx]
		if !ok || !collateral.Enabled {
			return nil, core.ErrCollateralNotFound
		}

		idx, gain, collateral := idx, gain, collateral
		g.Go(func() error {
			price, err := s.priceService.GetPrice(gctx, collateral, now)
			if err != nil {
				return err
			}

			values[idx] = gain.Mul(price).Truncate(vault.MaxPrecision)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	marketValue := decimal.Zero
	for _, value := range values {
		marketValue = marketValue.Add(value)
	}

	compounded, err := s.poolService.CompoundedBalance(ctx)
	if err != nil {
		return nil, err
	}

	deltaDeposit := v.Deposits.Sub(compounded)
	if !deltaDeposit.IsPositive() {
		return nil, core.ErrNothingToAuction
	}

	curve := vault.Curve{
		FastCutoff:         v.FastCutoff,
		TerminalCutoff:     v.TerminalCutoff,
		FastMultiplier:     v.FastMultiplier,
		TerminalMultiplier: v.TerminalMultiplier,
	}

	cost, retainedGain := curve.Price(deltaDeposit, marketValue)

	return &pricing{
		deltaDeposit: deltaDeposit,
		marketValue:  marketValue,
		cost:         cost,
		retainedGain: retainedGain,
		claims:       claims,
		indices:      indices,
	}, nil
}

func indexStrings(indices []int) pq.StringArray {
	out := make(pq.StringArray, len(indices))
	for i, idx := range indices {
		out[i] = strconv.Itoa(idx)
	}
	return out
}
