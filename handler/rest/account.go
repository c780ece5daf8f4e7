package rest

import (
	"net/http"

	"vault/core"
	"vault/handler/param"
	"vault/handler/render"
	"vault/handler/views"
	vaultmath "vault/internal/vault"
)

func accountHandler(vaultStr core.IVaultStore, accountStr core.IAccountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Address string `json:"address"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		account, err := accountStr.Find(ctx, params.Address)
		if err != nil {
			render.NotFoundRequest(w, err)
			return
		}

		v, err := vaultStr.Get(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, views.Account{
			Account: *account,
			Value:   account.Shares.Mul(sharePrice(v)).Truncate(vaultmath.MaxPrecision),
		})
	}
}

func claimableHandler(rewardSrv core.IRewardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Address string `json:"address"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		claimable, err := rewardSrv.Claimable(ctx, params.Address)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, claimable)
	}
}
