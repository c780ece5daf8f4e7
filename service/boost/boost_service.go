package boost

import (
	"context"
	"fmt"

	"vault/core"
	"vault/pkg/resthttp"

	"github.com/shopspring/decimal"
)

// Service http client for the boost delegation registry and its
// fee-quote surface
type Service struct {
	cfg *core.Config
}

// New new boost registry service
func New(cfg *core.Config) *Service {
	return &Service{cfg: cfg}
}

// HasCallback whether the address currently has an active forwarding
// callback configured
func (s *Service) HasCallback(ctx context.Context, address string) (bool, error) {
	url := fmt.Sprintf("%s/api/delegates/%s", s.cfg.Distributor.Registry, address)
	resp, err := resthttp.WithToken(ctx, s.cfg.Distributor.Token).Get(url)
	if err != nil {
		return false, err
	}

	var body struct {
		HasCallback bool `json:"has_callback"`
	}
	if err := resthttp.ParseResponse(resp, &body); err != nil {
		return false, err
	}

	return body.HasCallback, nil
}

// LockDuration the required lock duration for the distribution channel
func (s *Service) LockDuration(ctx context.Context) (int64, error) {
	url := fmt.Sprintf("%s/api/lock-duration", s.cfg.Distributor.Registry)
	resp, err := resthttp.WithToken(ctx, s.cfg.Distributor.Token).Get(url)
	if err != nil {
		return 0, err
	}

	var body struct {
		Seconds int64 `json:"seconds"`
	}
	if err := resthttp.ParseResponse(resp, &body); err != nil {
		return 0, err
	}

	return body.Seconds, nil
}

// Quote the fee percentage (out of 10000) a delegate charges for the
// claim, or the rejection sentinel
func (s *Service) Quote(ctx context.Context, claimant, receiver, delegate string, amount decimal.Decimal) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/api/quotes", s.cfg.Distributor.Registry)

	var body struct {
		Fee      decimal.Decimal `json:"fee"`
		Rejected bool            `json:"rejected"`
	}
	_, err := resthttp.Execute(resthttp.WithToken(ctx, s.cfg.Distributor.Token), "POST", url, map[string]interface{}{
		"claimant": claimant,
		"receiver": receiver,
		"delegate": delegate,
		"amount":   amount,
	}, &body)
	if err != nil {
		return decimal.Zero, err
	}

	if body.Rejected {
		return core.FeeRejected, nil
	}

	return body.Fee, nil
}
