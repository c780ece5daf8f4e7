package rest

import (
	"net/http"

	"vault/core"
	"vault/handler/param"
	"vault/handler/render"
)

func auctionPreviewHandler(auctionSrv core.IAuctionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		preview, err := auctionSrv.Preview(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, preview)
	}
}

// auction history, newest first
func transactionsHandler(auctionStr core.IAuctionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Limit int `json:"limit"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		limit := params.Limit
		if limit <= 0 {
			limit = 100
		}

		records, err := auctionStr.List(ctx, limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, records)
	}
}
