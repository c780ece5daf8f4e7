package rest

import (
	"net/http"

	"vault/core"
	"vault/handler/param"
	"vault/handler/render"

	"github.com/shopspring/decimal"
)

func depositHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Account string          `json:"account"`
			Amount  decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Account == "" || !params.Amount.IsPositive() {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		if err := vaultSrv.Deposit(ctx, params.Account, params.Amount); err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func withdrawHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Account  string          `json:"account"`
			Receiver string          `json:"receiver"`
			Amount   decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Account == "" || !params.Amount.IsPositive() {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		if params.Receiver == "" {
			params.Receiver = params.Account
		}

		if err := vaultSrv.Withdraw(ctx, params.Account, params.Receiver, params.Amount); err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func transferHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			From   string          `json:"from"`
			To     string          `json:"to"`
			Amount decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.From == "" || params.To == "" || !params.Amount.IsPositive() {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		if err := vaultSrv.Transfer(ctx, params.From, params.To, params.Amount); err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func redeemHandler(basketSrv core.IBasketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Caller   string          `json:"caller"`
			Receiver string          `json:"receiver"`
			Amount   decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Caller == "" || !params.Amount.IsPositive() {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		if params.Receiver == "" {
			params.Receiver = params.Caller
		}

		if err := basketSrv.Redeem(ctx, params.Caller, params.Receiver, params.Amount); err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func claimHandler(rewardSrv core.IRewardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Caller   string `json:"caller"`
			Account  string `json:"account"`
			Receiver string `json:"receiver"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Account == "" {
			render.BadRequest(w, core.ErrAccountNotFound)
			return
		}

		if params.Receiver == "" {
			params.Receiver = params.Account
		}

		var (
			claimed *core.ClaimedRewards
			err     error
		)
		if params.Caller != "" && params.Caller != params.Account {
			claimed, err = rewardSrv.ClaimFor(ctx, params.Caller, params.Account, params.Receiver)
		} else {
			claimed, err = rewardSrv.Claim(ctx, params.Account, params.Receiver)
		}
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, claimed)
	}
}

func buyAllHandler(auctionSrv core.IAuctionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Caller string `json:"caller"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Caller == "" {
			render.BadRequest(w, core.ErrOperationForbidden)
			return
		}

		record, err := auctionSrv.BuyAll(ctx, params.Caller)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, record)
	}
}
