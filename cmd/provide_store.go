package cmd

import (
	"vault/core"
	"vault/store/account"
	"vault/store/adapter"
	"vault/store/auction"
	"vault/store/collateral"
	"vault/store/delegate"
	"vault/store/locker"
	"vault/store/oracle"
	"vault/store/reward"
	"vault/store/transfer"
	"vault/store/vault"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideVaultStore(db *db.DB) core.IVaultStore {
	return vault.New(db)
}

func provideAccountStore(db *db.DB) core.IAccountStore {
	return account.New(db)
}

func provideRewardStore(db *db.DB) core.IRewardStore {
	return reward.New(db)
}

func provideLockerStore(db *db.DB) core.ILockerStore {
	return locker.New(db)
}

func provideCollateralStore(db *db.DB) core.ICollateralStore {
	return collateral.New(db)
}

func provideDelegateStore(db *db.DB) core.IDelegateStore {
	return delegate.New(db)
}

func provideAuctionStore(db *db.DB) core.IAuctionStore {
	return auction.New(db)
}

func provideTransferStore(db *db.DB) core.ITransferStore {
	return transfer.New(db)
}

func provideAdapterStore(db *db.DB) core.IAdapterStore {
	return adapter.New(db)
}

func provideOracleSignerStore(db *db.DB) core.OracleSignerStore {
	return oracle.NewSignerStore(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}
