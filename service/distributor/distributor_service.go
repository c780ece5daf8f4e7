package distributor

import (
	"context"
	"fmt"

	"vault/core"
	"vault/pkg/resthttp"

	"github.com/shopspring/decimal"
)

// Service http client for the external reward distributor
type Service struct {
	cfg *core.Config
}

// New new distributor service
func New(cfg *core.Config) core.IDistributorService {
	return &Service{cfg: cfg}
}

// Pending the primary reward amount currently claimable by receiver
func (s *Service) Pending(ctx context.Context, receiver string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/api/pending/%s", s.cfg.Distributor.URL, receiver)
	resp, err := resthttp.WithToken(ctx, s.cfg.Distributor.Token).Get(url)
	if err != nil {
		return decimal.Zero, err
	}

	var body struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := resthttp.ParseResponse(resp, &body); err != nil {
		return decimal.Zero, err
	}

	return body.Amount, nil
}

// Claim pay out accrued emissions to receiver, optionally boosted
// through delegate, capped at maxFeeBps
func (s *Service) Claim(ctx context.Context, receiver, delegate string, sources []string, maxFeeBps int) (*core.ClaimResult, error) {
	url := fmt.Sprintf("%s/api/claims", s.cfg.Distributor.URL)

	var result core.ClaimResult
	_, err := resthttp.Execute(resthttp.WithToken(ctx, s.cfg.Distributor.Token), "POST", url, map[string]interface{}{
		"receiver":    receiver,
		"delegate":    delegate,
		"sources":     sources,
		"max_fee_bps": maxFeeBps,
	}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
