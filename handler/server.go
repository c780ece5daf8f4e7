package handler

import (
	"net/http"

	"vault/core"
	"vault/handler/render"
	"vault/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	cfg *core.Config

	vaultStore      core.IVaultStore
	accountStore    core.IAccountStore
	lockerStore     core.ILockerStore
	collateralStore core.ICollateralStore
	auctionStore    core.IAuctionStore

	vaultService   core.IVaultService
	basketService  core.IBasketService
	rewardService  core.IRewardService
	auctionService core.IAuctionService
}

// New new server function
func New(
	cfg *core.Config,
	vaultStore core.IVaultStore,
	accountStore core.IAccountStore,
	lockerStore core.ILockerStore,
	collateralStore core.ICollateralStore,
	auctionStore core.IAuctionStore,
	vaultService core.IVaultService,
	basketService core.IBasketService,
	rewardService core.IRewardService,
	auctionService core.IAuctionService,
) Server {
	return Server{
		cfg:             cfg,
		vaultStore:      vaultStore,
		accountStore:    accountStore,
		lockerStore:     lockerStore,
		collateralStore: collateralStore,
		auctionStore:    auctionStore,
		vaultService:    vaultService,
		basketService:   basketService,
		rewardService:   rewardService,
		auctionService:  auctionService,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(resetRoutePath)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, http.StatusNotFound, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(
		s.vaultStore,
		s.accountStore,
		s.lockerStore,
		s.collateralStore,
		s.auctionStore,
		s.vaultService,
		s.basketService,
		s.rewardService,
		s.auctionService,
	))

	return r
}

func resetRoutePath(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c := chi.RouteContext(ctx); c != nil {
			c.RoutePath = r.URL.Path
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
