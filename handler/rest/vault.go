package rest

import (
	"net/http"

	"vault/core"
	"vault/handler/render"
	"vault/handler/views"
	vaultmath "vault/internal/vault"

	"github.com/shopspring/decimal"
)

func vaultHandler(vaultStr core.IVaultStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		v, err := vaultStr.Get(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, views.Vault{
			Vault:      *v,
			SharePrice: sharePrice(v),
		})
	}
}

func sharePrice(v *core.Vault) decimal.Decimal {
	if v.TotalShares.IsPositive() {
		return v.Deposits.Div(v.TotalShares).Truncate(vaultmath.MaxPrecision)
	}

	return decimal.New(1, 0)
}
