package rest

import (
	"net/http"

	"vault/core"
	"vault/handler/codes"
	"vault/handler/render"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Handle handle rest api request
func Handle(
	vaultStore core.IVaultStore,
	accountStore core.IAccountStore,
	lockerStore core.ILockerStore,
	collateralStore core.ICollateralStore,
	auctionStore core.IAuctionStore,
	vaultService core.IVaultService,
	basketService core.IBasketService,
	rewardService core.IRewardService,
	auctionService core.IAuctionService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, codes.With(twirp.NotFoundError("not found"), http.StatusNotFound))
	})

	router.Get("/vault", vaultHandler(vaultStore))
	router.Get("/accounts/{address}", accountHandler(vaultStore, accountStore))
	router.Get("/accounts/{address}/claimable", claimableHandler(rewardService))
	router.Get("/lockers", lockersHandler(lockerStore))
	router.Get("/collaterals", collateralsHandler(collateralStore))
	router.Get("/auction/preview", auctionPreviewHandler(auctionService))
	router.Get("/transactions", transactionsHandler(auctionStore))

	router.Post("/deposits", depositHandler(vaultService))
	router.Post("/withdrawals", withdrawHandler(vaultService))
	router.Post("/transfers", transferHandler(vaultService))
	router.Post("/redemptions", redeemHandler(basketService))
	router.Post("/claims", claimHandler(rewardService))
	router.Post("/auction/buy", buyAllHandler(auctionService))

	return router
}
