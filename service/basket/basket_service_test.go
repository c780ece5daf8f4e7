package basket

import (
	"context"
	"errors"
	"testing"

	"vault/core"
	lockerstore "vault/store/locker"
	transferstore "vault/store/transfer"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testWallet struct {
	balances map[string]decimal.Decimal
}

func balanceKey(assetID, account string) string {
	return assetID + ":" + account
}

func (w *testWallet) HandleTransfer(ctx context.Context, transfer *core.Transfer) error {
	return nil
}

func (w *testWallet) AssetBalance(ctx context.Context, assetID, account string) (decimal.Decimal, error) {
	return w.balances[balanceKey(assetID, account)], nil
}

func (w *testWallet) Pull(ctx context.Context, trace, assetID, from string, amount decimal.Decimal) error {
	balance := w.balances[balanceKey(assetID, from)]
	if balance.LessThan(amount) {
		return errors.New("insufficient balance")
	}

	w.balances[balanceKey(assetID, from)] = balance.Sub(amount)
	return nil
}

func testConfig() *core.Config {
	cfg := &core.Config{}
	cfg.App.VaultAddress = "engine"
	cfg.App.BasketAssetID = "basket-asset"
	cfg.Admins = []string{"admin"}
	return cfg
}

func setupBasket(t *testing.T, lockers []*core.LiquidLocker, supply decimal.Decimal) (*db.DB, core.ILockerStore, core.ITransferStore) {
	database := db.MustOpen(db.SqliteInMemory())
	require.Nil(t, db.Migrate(database))

	lockerStr := lockerstore.New(database)
	transferStr := transferstore.New(database)

	require.Nil(t, database.Tx(func(tx *db.DB) error {
		for _, locker := range lockers {
			if err := lockerStr.Save(context.Background(), tx, locker); err != nil {
				return err
			}
		}

		basket := core.Basket{AssetID: "basket-asset", TotalSupply: supply}
		basket.ID = 1
		return tx.Update().Where("id=?", 1).FirstOrCreate(&basket).Error
	}))

	return database, lockerStr, transferStr
}

func sumTracked(t *testing.T, lockerStr core.ILockerStore) decimal.Decimal {
	lockers, err := lockerStr.All(context.Background())
	require.Nil(t, err)

	sum := decimal.Zero
	for _, locker := range lockers {
		sum = sum.Add(locker.TrackedBalance)
	}
	return sum
}

func TestRedeemRequiresSurrender(t *testing.T) {
	ctx := context.Background()

	database, lockerStr, transferStr := setupBasket(t, []*core.LiquidLocker{
		{AssetID: "token-a", Symbol: "A", Receiver: "vault-a", TrackedBalance: decimal.NewFromInt(60), MintActive: true, RedeemActive: true},
		{AssetID: "token-c", Symbol: "C", Receiver: "vault-c", TrackedBalance: decimal.NewFromInt(40), MintActive: true, RedeemActive: true},
	}, decimal.NewFromInt(100))
	defer database.Close()

	wallet := &testWallet{balances: map[string]decimal.Decimal{
		balanceKey("basket-asset", "alice"): decimal.NewFromInt(40),
	}}

	service := New(testConfig(), database, lockerStr, transferStr, wallet)

	// holding no basket units buys nothing
	err := service.Redeem(ctx, "mallory", "mallory", decimal.NewFromInt(40))
	assert.NotNil(t, err)

	basket, err := lockerStr.Basket(ctx)
	require.Nil(t, err)
	assert.True(t, basket.TotalSupply.Equal(decimal.NewFromInt(100)), "supply %s", basket.TotalSupply)

	transfers, err := transferStr.Top(ctx, 10)
	require.Nil(t, err)
	assert.Len(t, transfers, 0)

	// a funded holder redeems pro rata and the units are debited
	require.Nil(t, service.Redeem(ctx, "alice", "alice", decimal.NewFromInt(40)))

	basket, err = lockerStr.Basket(ctx)
	require.Nil(t, err)
	assert.True(t, basket.TotalSupply.Equal(decimal.NewFromInt(60)), "supply %s", basket.TotalSupply)
	assert.True(t, wallet.balances[balanceKey("basket-asset", "alice")].IsZero())
	assert.True(t, sumTracked(t, lockerStr).Equal(basket.TotalSupply))

	transfers, err = transferStr.Top(ctx, 10)
	require.Nil(t, err)
	assert.Len(t, transfers, 2)
}

func TestRedeemInactiveLockerForfeits(t *testing.T) {
	ctx := context.Background()

	database, lockerStr, transferStr := setupBasket(t, []*core.LiquidLocker{
		{AssetID: "token-a", Symbol: "A", Receiver: "vault-a", TrackedBalance: decimal.NewFromInt(50), MintActive: true, RedeemActive: true},
		{AssetID: "token-b", Symbol: "B", Receiver: "vault-b", TrackedBalance: decimal.NewFromInt(50), MintActive: true, RedeemActive: false},
	}, decimal.NewFromInt(100))
	defer database.Close()

	wallet := &testWallet{balances: map[string]decimal.Decimal{
		balanceKey("basket-asset", "alice"): decimal.NewFromInt(20),
	}}

	service := New(testConfig(), database, lockerStr, transferStr, wallet)
	require.Nil(t, service.Redeem(ctx, "alice", "alice", decimal.NewFromInt(20)))

	// the frozen locker's tracked balance drops all the same
	lockers, err := lockerStr.All(ctx)
	require.Nil(t, err)
	assert.True(t, lockers[1].TrackedBalance.Equal(decimal.NewFromInt(40)), "tracked %s", lockers[1].TrackedBalance)

	basket, err := lockerStr.Basket(ctx)
	require.Nil(t, err)
	assert.True(t, sumTracked(t, lockerStr).Equal(basket.TotalSupply))

	// but nothing of it leaves
	transfers, err := transferStr.Top(ctx, 10)
	require.Nil(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "token-a", transfers[0].AssetID)
}

func TestBasketInvariantAcrossOperations(t *testing.T) {
	ctx := context.Background()

	database, lockerStr, transferStr := setupBasket(t, []*core.LiquidLocker{
		{AssetID: "token-a", Symbol: "A", Receiver: "vault-a", MintActive: true, RedeemActive: true},
		{AssetID: "token-b", Symbol: "B", Receiver: "vault-b", MintActive: false, RedeemActive: true},
		{AssetID: "token-c", Symbol: "C", Receiver: "vault-c", MintActive: true, RedeemActive: true},
	}, decimal.Zero)
	defer database.Close()

	wallet := &testWallet{balances: map[string]decimal.Decimal{
		balanceKey("token-a", "vault-a"):    decimal.NewFromInt(1000),
		balanceKey("token-b", "vault-b"):    decimal.NewFromInt(1000),
		balanceKey("token-c", "vault-c"):    decimal.NewFromInt(1000),
		balanceKey("basket-asset", "alice"): decimal.NewFromInt(30),
	}}

	service := New(testConfig(), database, lockerStr, transferStr, wallet)

	check := func() {
		basket, err := lockerStr.Basket(ctx)
		require.Nil(t, err)
		assert.True(t, sumTracked(t, lockerStr).Equal(basket.TotalSupply),
			"tracked %s supply %s", sumTracked(t, lockerStr), basket.TotalSupply)
	}

	// round robin skips the inactive locker: A, C, A, C
	visits := []string{}
	for i := 0; i < 4; i++ {
		basket, err := lockerStr.Basket(ctx)
		require.Nil(t, err)
		locker, err := lockerStr.Find(ctx, basket.LockerIndex)
		require.Nil(t, err)
		visits = append(visits, locker.Symbol)

		require.Nil(t, service.Mint(ctx, "engine", decimal.NewFromInt(10)))
		check()
	}
	assert.Equal(t, []string{"A", "C", "A", "C"}, visits)

	require.Nil(t, service.Redeem(ctx, "alice", "alice", decimal.NewFromInt(30)))
	check()

	require.Nil(t, service.Configure(ctx, "admin", 1, "vault-b", true, false))
	check()

	require.Nil(t, service.Sweep(ctx, "admin", 0, "treasury"))
	check()

	// minting is engine only
	assert.Equal(t, core.ErrOperationForbidden, service.Mint(ctx, "mallory", decimal.NewFromInt(1)))
}
