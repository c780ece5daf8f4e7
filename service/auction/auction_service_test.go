package auction

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"vault/core"
	accountstore "vault/store/account"
	auctionstore "vault/store/auction"
	collateralstore "vault/store/collateral"
	vaultstore "vault/store/vault"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPool struct {
	gains      []decimal.Decimal
	compounded decimal.Decimal
	deposited  decimal.Decimal
	claimedFor string
	claimed    []int
}

func (p *stubPool) UnclaimedGains(ctx context.Context) ([]decimal.Decimal, error) {
	return p.gains, nil
}

func (p *stubPool) CompoundedBalance(ctx context.Context) (decimal.Decimal, error) {
	return p.compounded, nil
}

func (p *stubPool) Deposit(ctx context.Context, amount decimal.Decimal) error {
	p.deposited = p.deposited.Add(amount)
	return nil
}

func (p *stubPool) Withdraw(ctx context.Context, receiver string, amount decimal.Decimal) error {
	return nil
}

func (p *stubPool) ClaimCollateral(ctx context.Context, receiver string, indices []int) error {
	p.claimedFor = receiver
	p.claimed = indices
	return nil
}

type stubOracle struct {
	prices map[string]decimal.Decimal
}

func (o *stubOracle) GetPrice(ctx context.Context, collateral *core.Collateral, t time.Time) (decimal.Decimal, error) {
	return o.prices[collateral.AssetID], nil
}

type stubReward struct{}

func (r *stubReward) Synchronize(ctx context.Context, tx *db.DB, vault *core.Vault, account string) error {
	return nil
}

func (r *stubReward) Claim(ctx context.Context, account, receiver string) (*core.ClaimedRewards, error) {
	return &core.ClaimedRewards{}, nil
}

func (r *stubReward) ClaimFor(ctx context.Context, caller, account, receiver string) (*core.ClaimedRewards, error) {
	return &core.ClaimedRewards{}, nil
}

func (r *stubReward) Claimable(ctx context.Context, account string) (*core.ClaimedRewards, error) {
	return &core.ClaimedRewards{}, nil
}

func (r *stubReward) FetchRewards(ctx context.Context, extraDelegate string) error {
	return nil
}

type stubWallet struct {
	pulled decimal.Decimal
}

func (w *stubWallet) HandleTransfer(ctx context.Context, transfer *core.Transfer) error {
	return nil
}

func (w *stubWallet) AssetBalance(ctx context.Context, assetID, account string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (w *stubWallet) Pull(ctx context.Context, trace, assetID, from string, amount decimal.Decimal) error {
	w.pulled = w.pulled.Add(amount)
	return nil
}

type auctionDeps struct {
	db       *db.DB
	vaults   core.IVaultStore
	auctions core.IAuctionStore
	pool     *stubPool
	wallet   *stubWallet
}

func setupAuction(t *testing.T, v *core.Vault, pool *stubPool, prices map[string]decimal.Decimal) (core.IAuctionService, *auctionDeps) {
	database := db.MustOpen(db.SqliteInMemory())
	require.Nil(t, db.Migrate(database))

	deps := &auctionDeps{
		db:       database,
		vaults:   vaultstore.New(database),
		auctions: auctionstore.New(database),
		pool:     pool,
		wallet:   &stubWallet{},
	}

	collaterals := collateralstore.New(database)
	require.Nil(t, database.Tx(func(tx *db.DB) error {
		if err := deps.vaults.Save(context.Background(), tx, v); err != nil {
			return err
		}

		for idx := range pool.gains {
			collateral := &core.Collateral{
				AssetID: "collateral-" + string(rune('a'+idx)),
				Symbol:  "C" + string(rune('A'+idx)),
				Index:   idx,
				Enabled: true,
			}
			if err := collaterals.Save(context.Background(), tx, collateral); err != nil {
				return err
			}
		}

		return nil
	}))

	cfg := &core.Config{}
	cfg.App.AssetID = "vault-asset"
	cfg.App.FeeReceiver = "fee-receiver"

	service := New(
		cfg,
		database,
		deps.vaults,
		accountstore.New(database),
		deps.auctions,
		collaterals,
		pool,
		&stubOracle{prices: prices},
		&stubReward{},
		deps.wallet,
	)

	return service, deps
}

func TestBuyAllNothingToAuction(t *testing.T) {
	ctx := context.Background()

	v := &core.Vault{
		AssetID:     "vault-asset",
		Deposits:    decimal.NewFromInt(1000),
		TotalShares: decimal.NewFromInt(1000),
	}

	// positive gains alone are not enough, the pool must also be
	// behind on its compounded balance
	pool := &stubPool{
		gains:      []decimal.Decimal{decimal.Zero, decimal.NewFromInt(10)},
		compounded: decimal.NewFromInt(1000),
	}

	service, deps := setupAuction(t, v, pool, map[string]decimal.Decimal{
		"collateral-b": decimal.NewFromInt(20),
	})
	defer deps.db.Close()

	_, err := service.BuyAll(ctx, "alice")
	assert.Equal(t, core.ErrNothingToAuction, err)

	pool.compounded = decimal.NewFromInt(1100)
	_, err = service.BuyAll(ctx, "alice")
	assert.Equal(t, core.ErrNothingToAuction, err)

	_, err = service.Preview(ctx)
	assert.Equal(t, core.ErrNothingToAuction, err)

	assert.True(t, deps.wallet.pulled.IsZero())
	records, err := deps.auctions.List(ctx, 10)
	require.Nil(t, err)
	assert.Len(t, records, 0)
}

func TestBuyAllSettles(t *testing.T) {
	ctx := context.Background()

	v := &core.Vault{
		AssetID:            "vault-asset",
		Deposits:           decimal.NewFromInt(1000),
		TotalShares:        decimal.NewFromInt(1000),
		FastCutoff:         decimal.NewFromFloat(1.5),
		TerminalCutoff:     decimal.NewFromInt(3),
		FastMultiplier:     decimal.NewFromFloat(0.9),
		TerminalMultiplier: decimal.NewFromFloat(0.99),
	}

	pool := &stubPool{
		gains:      []decimal.Decimal{decimal.Zero, decimal.NewFromInt(10)},
		compounded: decimal.NewFromInt(900),
	}

	service, deps := setupAuction(t, v, pool, map[string]decimal.Decimal{
		"collateral-b": decimal.NewFromInt(20),
	})
	defer deps.db.Close()

	// deltaDeposit 100, market value 200, gain ratio 2 lands on the
	// fast multiplier: cost 180, retained gain 80
	record, err := service.BuyAll(ctx, "alice")
	require.Nil(t, err)

	assert.True(t, record.DeltaDeposit.Equal(decimal.NewFromInt(100)), "delta %s", record.DeltaDeposit)
	assert.True(t, record.MarketValue.Equal(decimal.NewFromInt(200)))
	assert.True(t, record.Cost.Equal(decimal.NewFromInt(180)))
	assert.True(t, record.RetainedGain.Equal(decimal.NewFromInt(80)))
	assert.True(t, record.Fee.Equal(decimal.NewFromInt(16)), "fee %s", record.Fee)
	assert.Equal(t, []string{"1"}, []string(record.Claimed))

	var claims []*core.PoolGain
	require.Nil(t, json.Unmarshal(record.Content, &claims))
	require.Len(t, claims, 1)
	assert.Equal(t, 1, claims[0].Index)
	assert.True(t, claims[0].Amount.Equal(decimal.NewFromInt(10)))

	assert.True(t, deps.wallet.pulled.Equal(decimal.NewFromInt(180)))
	assert.True(t, pool.deposited.Equal(decimal.NewFromInt(180)))
	assert.Equal(t, "alice", pool.claimedFor)
	assert.Equal(t, []int{1}, pool.claimed)

	after, err := deps.vaults.Get(ctx)
	require.Nil(t, err)
	assert.True(t, after.Deposits.Equal(decimal.NewFromInt(1080)), "deposits %s", after.Deposits)
	assert.True(t, after.TotalShares.GreaterThan(decimal.NewFromInt(1000)), "shares %s", after.TotalShares)

	records, err := deps.auctions.List(ctx, 10)
	require.Nil(t, err)
	require.Len(t, records, 1)
}
