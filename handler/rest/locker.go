package rest

import (
	"net/http"

	"vault/core"
	"vault/handler/render"
	"vault/handler/views"
)

func lockersHandler(lockerStr core.ILockerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		basket, err := lockerStr.Basket(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		lockers, err := lockerStr.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, views.Basket{
			Basket:  *basket,
			Lockers: lockers,
		})
	}
}

func collateralsHandler(collateralStr core.ICollateralStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		collaterals, err := collateralStr.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, collaterals)
	}
}
