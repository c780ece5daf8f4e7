package wallet

import (
	"context"
	"fmt"

	"vault/core"
	"vault/pkg/resthttp"

	"github.com/shopspring/decimal"
)

// Service http client for the treasury wallet holding the vault's
// token balances
type Service struct {
	cfg *core.Config
}

// New new wallet service
func New(cfg *core.Config) core.IWalletService {
	return &Service{cfg: cfg}
}

// HandleTransfer send a queued payout; idempotent on the trace id
func (s *Service) HandleTransfer(ctx context.Context, transfer *core.Transfer) error {
	url := fmt.Sprintf("%s/api/transfers", s.cfg.Treasury.URL)
	_, err := resthttp.Execute(resthttp.WithToken(ctx, s.cfg.Treasury.Token), "POST", url, map[string]interface{}{
		"trace_id": transfer.TraceID,
		"opponent": transfer.OpponentID,
		"asset_id": transfer.AssetID,
		"amount":   transfer.Amount,
		"memo":     transfer.Memo,
	}, nil)

	return err
}

// AssetBalance the raw token balance an account holds
func (s *Service) AssetBalance(ctx context.Context, assetID, account string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/api/balances/%s/%s", s.cfg.Treasury.URL, account, assetID)
	resp, err := resthttp.WithToken(ctx, s.cfg.Treasury.Token).Get(url)
	if err != nil {
		return decimal.Zero, err
	}

	var body struct {
		Balance decimal.Decimal `json:"balance"`
	}
	if err := resthttp.ParseResponse(resp, &body); err != nil {
		return decimal.Zero, err
	}

	return body.Balance, nil
}

// Pull debit amount of assetID from an account into the treasury.
// The trace dedupes the debit on the treasury side, so a retried pull
// is safe.
func (s *Service) Pull(ctx context.Context, trace, assetID, from string, amount decimal.Decimal) error {
	url := fmt.Sprintf("%s/api/pulls", s.cfg.Treasury.URL)
	_, err := resthttp.Execute(resthttp.WithToken(ctx, s.cfg.Treasury.Token), "POST", url, map[string]interface{}{
		"trace_id": trace,
		"asset_id": assetID,
		"from":     from,
		"amount":   amount,
	}, nil)

	return err
}
