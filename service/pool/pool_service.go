package pool

import (
	"context"
	"fmt"

	"vault/core"
	"vault/pkg/resthttp"

	"github.com/shopspring/decimal"
)

// Service http client for the external liquidation pool
type Service struct {
	cfg *core.Config
}

// New new pool service
func New(cfg *core.Config) core.IPoolService {
	return &Service{cfg: cfg}
}

// UnclaimedGains the pool's per-collateral unclaimed gain vector
func (s *Service) UnclaimedGains(ctx context.Context) ([]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/api/gains/%s", s.cfg.Pool.URL, s.cfg.App.VaultAddress)
	resp, err := resthttp.WithToken(ctx, s.cfg.Pool.Token).Get(url)
	if err != nil {
		return nil, err
	}

	var body struct {
		Gains []decimal.Decimal `json:"gains"`
	}
	if err := resthttp.ParseResponse(resp, &body); err != nil {
		return nil, err
	}

	return body.Gains, nil
}

// CompoundedBalance the pool-side compounded backing of the vault
func (s *Service) CompoundedBalance(ctx context.Context) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/api/balances/%s", s.cfg.Pool.URL, s.cfg.App.VaultAddress)
	resp, err := resthttp.WithToken(ctx, s.cfg.Pool.Token).Get(url)
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

// Deposit push amount of the vault asset into the pool
func (s *Service) Deposit(ctx context.Context, amount decimal.Decimal) error {
	url := fmt.Sprintf("%s/api/deposits", s.cfg.Pool.URL)
	_, err := resthttp.Execute(resthttp.WithToken(ctx, s.cfg.Pool.Token), "POST", url, map[string]interface{}{
		"account": s.cfg.App.VaultAddress,
		"amount":  amount,
	}, nil)

	return err
}

// Withdraw release amount of the vault asset from the pool to receiver
func (s *Service) Withdraw(ctx context.Context, receiver string, amount decimal.Decimal) error {
	url := fmt.Sprintf("%s/api/withdrawals", s.cfg.Pool.URL)
	_, err := resthttp.Execute(resthttp.WithToken(ctx, s.cfg.Pool.Token), "POST", url, map[string]interface{}{
		"account":  s.cfg.App.VaultAddress,
		"receiver": receiver,
		"amount":   amount,
	}, nil)

	return err
}

// ClaimCollateral instruct the pool to hand the claimed collateral
// entries over to receiver
func (s *Service) ClaimCollateral(ctx context.Context, receiver string, indices []int) error {
	url := fmt.Sprintf("%s/api/claims", s.cfg.Pool.URL)
	_, err := resthttp.Execute(resthttp.WithToken(ctx, s.cfg.Pool.Token), "POST", url, map[string]interface{}{
		"account":  s.cfg.App.VaultAddress,
		"receiver": receiver,
		"indices":  indices,
	}, nil)

	return err
}
