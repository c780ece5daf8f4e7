package cmd

import (
	"vault/core"
	auctionservice "vault/service/auction"
	basketservice "vault/service/basket"
	"vault/service/boost"
	delegateservice "vault/service/delegate"
	"vault/service/distributor"
	"vault/service/factory"
	oracleservice "vault/service/oracle"
	"vault/service/pool"
	rewardservice "vault/service/reward"
	vaultservice "vault/service/vault"
	"vault/service/wallet"

	"github.com/fox-one/pkg/store/db"
)

func provideWalletService() core.IWalletService {
	return wallet.New(provideConfig())
}

func providePoolService() core.IPoolService {
	return pool.New(provideConfig())
}

func provideFactoryService() core.IFactoryService {
	return factory.New(provideConfig())
}

func provideDistributorService() core.IDistributorService {
	return distributor.New(provideConfig())
}

func provideBoostService() *boost.Service {
	return boost.New(provideConfig())
}

func providePriceService(database *db.DB) core.IPriceOracleService {
	return oracleservice.New(provideConfig(), provideOracleSignerStore(database))
}

func provideDelegateSelector(database *db.DB) core.IDelegateSelector {
	return delegateservice.New(provideDelegateStore(database), provideBoostService())
}

func provideBasketService(database *db.DB) core.IBasketService {
	return basketservice.New(
		provideConfig(),
		database,
		provideLockerStore(database),
		provideTransferStore(database),
		provideWalletService(),
	)
}

func provideRewardService(database *db.DB) core.IRewardService {
	return rewardservice.New(
		provideConfig(),
		database,
		provideVaultStore(database),
		provideRewardStore(database),
		provideAccountStore(database),
		provideTransferStore(database),
		provideAdapterStore(database),
		provideBasketService(database),
		provideDelegateSelector(database),
		provideBoostService(),
		provideDistributorService(),
		provideWalletService(),
	)
}

func provideVaultService(database *db.DB) core.IVaultService {
	return vaultservice.New(
		provideConfig(),
		database,
		provideVaultStore(database),
		provideAccountStore(database),
		provideRewardService(database),
		providePoolService(),
		provideWalletService(),
	)
}

func provideAuctionService(database *db.DB) core.IAuctionService {
	return auctionservice.New(
		provideConfig(),
		database,
		provideVaultStore(database),
		provideAccountStore(database),
		provideAuctionStore(database),
		provideCollateralStore(database),
		providePoolService(),
		providePriceService(database),
		provideRewardService(database),
		provideWalletService(),
	)
}
