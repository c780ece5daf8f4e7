package reward

import (
	"context"
	"errors"
	"testing"
	"time"

	"vault/core"
	"vault/internal/vault"
	accountstore "vault/store/account"
	adapterstore "vault/store/adapter"
	rewardstore "vault/store/reward"
	transferstore "vault/store/transfer"
	vaultstore "vault/store/vault"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBoost struct {
	hasCallback  bool
	lockDuration int64
}

func (b *testBoost) HasCallback(ctx context.Context, address string) (bool, error) {
	return b.hasCallback, nil
}

func (b *testBoost) LockDuration(ctx context.Context) (int64, error) {
	return b.lockDuration, nil
}

type testDistributor struct {
	result *core.ClaimResult
	err    error
}

func (d *testDistributor) Pending(ctx context.Context, receiver string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (d *testDistributor) Claim(ctx context.Context, receiver, delegate string, sources []string, maxFeeBps int) (*core.ClaimResult, error) {
	return d.result, d.err
}

type testSelector struct{}

func (s *testSelector) SelectBest(ctx context.Context, claimant, receiver string, amount decimal.Decimal, extra string) (string, decimal.Decimal, error) {
	return core.NoDelegate, amount, nil
}

type testBasket struct {
	minted decimal.Decimal
}

func (b *testBasket) NextLocker(ctx context.Context) (*core.LiquidLocker, error) {
	return &core.LiquidLocker{AssetID: "token-a", Receiver: "vault-a"}, nil
}

func (b *testBasket) Mint(ctx context.Context, caller string, amount decimal.Decimal) error {
	b.minted = b.minted.Add(amount)
	return nil
}

func (b *testBasket) Redeem(ctx context.Context, caller, receiver string, amount decimal.Decimal) error {
	return nil
}

func (b *testBasket) Configure(ctx context.Context, caller string, index int, receiver string, mintActive, redeemActive bool) error {
	return nil
}

func (b *testBasket) Sweep(ctx context.Context, caller string, index int, receiver string) error {
	return nil
}

type testWallet struct {
	pulled decimal.Decimal
}

func (w *testWallet) HandleTransfer(ctx context.Context, transfer *core.Transfer) error {
	return nil
}

func (w *testWallet) AssetBalance(ctx context.Context, assetID, account string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (w *testWallet) Pull(ctx context.Context, trace, assetID, from string, amount decimal.Decimal) error {
	w.pulled = w.pulled.Add(amount)
	return nil
}

type rewardDeps struct {
	db        *db.DB
	vaults    core.IVaultStore
	rewards   core.IRewardStore
	accounts  core.IAccountStore
	transfers core.ITransferStore

	boost       *testBoost
	distributor *testDistributor
	basket      *testBasket
	wallet      *testWallet
}

func testConfig() *core.Config {
	cfg := &core.Config{}
	cfg.App.AssetID = "vault-asset"
	cfg.App.PrimaryAssetID = "primary-asset"
	cfg.App.BasketAssetID = "basket-asset"
	cfg.App.VaultAddress = "engine"
	cfg.Distributor.Sources = []string{"source-1"}
	cfg.Distributor.MaxFeeBps = 10000
	cfg.Admins = []string{"admin"}
	return cfg
}

func setupReward(t *testing.T, v *core.Vault) (core.IRewardService, *rewardDeps) {
	database := db.MustOpen(db.SqliteInMemory())
	require.Nil(t, db.Migrate(database))

	deps := &rewardDeps{
		db:          database,
		vaults:      vaultstore.New(database),
		rewards:     rewardstore.New(database),
		accounts:    accountstore.New(database),
		transfers:   transferstore.New(database),
		boost:       &testBoost{},
		distributor: &testDistributor{},
		basket:      &testBasket{},
		wallet:      &testWallet{},
	}

	require.Nil(t, database.Tx(func(tx *db.DB) error {
		return deps.vaults.Save(context.Background(), tx, v)
	}))

	service := New(
		testConfig(),
		database,
		deps.vaults,
		deps.rewards,
		deps.accounts,
		deps.transfers,
		adapterstore.New(database),
		deps.basket,
		&testSelector{},
		deps.boost,
		deps.distributor,
		deps.wallet,
	)

	return service, deps
}

func TestFetchRewardsWeekGate(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Unix()

	service, deps := setupReward(t, &core.Vault{
		AssetID:      "vault-asset",
		TotalShares:  decimal.NewFromInt(1000),
		Deposits:     decimal.NewFromInt(1000),
		LastUpdate:   now,
		PeriodFinish: now,
	})
	defer deps.db.Close()

	assert.Equal(t, core.ErrFetchTooSoon, service.FetchRewards(ctx, core.NoDelegate))
}

func TestFetchRewardsExtraDelegateCallback(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Unix()

	service, deps := setupReward(t, &core.Vault{
		AssetID:      "vault-asset",
		TotalShares:  decimal.NewFromInt(1000),
		Deposits:     decimal.NewFromInt(1000),
		LastUpdate:   now - 2*vault.SecondsPerWeek,
		PeriodFinish: now - 2*vault.SecondsPerWeek,
	})
	defer deps.db.Close()

	// a callback-capable extra candidate is refused outright
	deps.boost.hasCallback = true
	assert.Equal(t, core.ErrDelegateHasCallback, service.FetchRewards(ctx, "proxy"))

	deps.boost.hasCallback = false
	deps.distributor.result = &core.ClaimResult{}
	assert.Nil(t, service.FetchRewards(ctx, "proxy"))
}

func TestFetchRewardsSoftFail(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Unix()
	finish := now - 2*vault.SecondsPerWeek

	service, deps := setupReward(t, &core.Vault{
		AssetID:      "vault-asset",
		TotalShares:  decimal.NewFromInt(1000),
		Deposits:     decimal.NewFromInt(1000),
		LastUpdate:   finish,
		PeriodFinish: finish,
	})
	defer deps.db.Close()

	deps.distributor.err = errors.New("distributor down")
	require.Nil(t, service.FetchRewards(ctx, core.NoDelegate))

	// nothing rolled over
	v, err := deps.vaults.Get(ctx)
	require.Nil(t, err)
	assert.Equal(t, finish, v.PeriodFinish)

	states, err := deps.rewards.States(ctx)
	require.Nil(t, err)
	for _, state := range states {
		assert.True(t, state.Rate.IsZero())
	}
}

func TestFetchRewardsRollsRates(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Unix()

	service, deps := setupReward(t, &core.Vault{
		AssetID:      "vault-asset",
		TotalShares:  decimal.NewFromInt(1000),
		Deposits:     decimal.NewFromInt(1000),
		LastUpdate:   now - 2*vault.SecondsPerWeek,
		PeriodFinish: now - 2*vault.SecondsPerWeek,
	})
	defer deps.db.Close()

	deps.distributor.result = &core.ClaimResult{
		PrimaryAmount: decimal.NewFromInt(vault.SecondsPerWeek),
	}
	require.Nil(t, service.FetchRewards(ctx, core.NoDelegate))

	v, err := deps.vaults.Get(ctx)
	require.Nil(t, err)
	assert.True(t, v.PeriodFinish > now, "period finish %d", v.PeriodFinish)

	states, err := deps.rewards.States(ctx)
	require.Nil(t, err)
	for _, state := range states {
		if state.Channel == core.ChannelPrimary {
			assert.True(t, state.Rate.Equal(decimal.New(1, 0)), "rate %s", state.Rate)
		} else {
			assert.True(t, state.Rate.IsZero())
		}
	}

	// unlocked mode pays the primary channel directly, nothing is
	// minted into the basket
	assert.True(t, deps.basket.minted.IsZero())
}

func TestFetchRewardsLockedMintsBasket(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Unix()

	service, deps := setupReward(t, &core.Vault{
		AssetID:      "vault-asset",
		TotalShares:  decimal.NewFromInt(1000),
		Deposits:     decimal.NewFromInt(1000),
		LastUpdate:   now - 2*vault.SecondsPerWeek,
		PeriodFinish: now - 2*vault.SecondsPerWeek,
	})
	defer deps.db.Close()

	deps.boost.lockDuration = 86400
	deps.distributor.result = &core.ClaimResult{
		PrimaryAmount: decimal.NewFromInt(700),
	}
	require.Nil(t, service.FetchRewards(ctx, core.NoDelegate))

	assert.True(t, deps.basket.minted.Equal(decimal.NewFromInt(700)))

	states, err := deps.rewards.States(ctx)
	require.Nil(t, err)
	for _, state := range states {
		switch state.Channel {
		case core.ChannelLocked:
			assert.True(t, state.Rate.IsPositive())
		case core.ChannelPrimary:
			assert.True(t, state.Rate.IsZero())
		}
	}
}

func TestClaimResetsPending(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Unix()

	service, deps := setupReward(t, &core.Vault{
		AssetID:      "vault-asset",
		TotalShares:  decimal.NewFromInt(1000),
		Deposits:     decimal.NewFromInt(1000),
		LastUpdate:   now - 3600,
		PeriodFinish: now - 3600,
	})
	defer deps.db.Close()

	require.Nil(t, deps.db.Tx(func(tx *db.DB) error {
		return deps.rewards.SaveAccountReward(ctx, tx, &core.AccountReward{
			Account: "alice",
			Channel: core.ChannelAsset,
			Pending: decimal.NewFromInt(70),
		})
	}))

	claimed, err := service.Claim(ctx, "alice", "alice")
	require.Nil(t, err)
	assert.True(t, claimed.Asset.Equal(decimal.NewFromInt(70)), "claimed %s", claimed.Asset)

	rewards, err := deps.rewards.AccountRewards(ctx, "alice")
	require.Nil(t, err)
	for _, reward := range rewards {
		assert.True(t, reward.Pending.IsZero())
	}

	transfers, err := deps.transfers.Top(ctx, 10)
	require.Nil(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "vault-asset", transfers[0].AssetID)
	assert.True(t, transfers[0].Amount.Equal(decimal.NewFromInt(70)))

	// a second claim has nothing left to pay
	claimed, err = service.Claim(ctx, "alice", "alice")
	require.Nil(t, err)
	assert.True(t, claimed.Asset.IsZero())
}

func TestClaimForNeedsApproval(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Unix()

	service, deps := setupReward(t, &core.Vault{
		AssetID:      "vault-asset",
		TotalShares:  decimal.NewFromInt(1000),
		Deposits:     decimal.NewFromInt(1000),
		LastUpdate:   now,
		PeriodFinish: now,
	})
	defer deps.db.Close()

	_, err := service.ClaimFor(ctx, "operator", "alice", "operator")
	assert.Equal(t, core.ErrClaimNotApproved, err)

	require.Nil(t, deps.accounts.SetApproval(ctx, "alice", "operator", true))
	_, err = service.ClaimFor(ctx, "operator", "alice", "operator")
	assert.Nil(t, err)
}
