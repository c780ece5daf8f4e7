package factory

import (
	"context"
	"fmt"

	"vault/core"
	"vault/pkg/resthttp"
)

// Service http client for the external collateral factory listing
type Service struct {
	cfg *core.Config
}

// New new factory service
func New(cfg *core.Config) core.IFactoryService {
	return &Service{cfg: cfg}
}

// ListCollaterals enumerate the collateral assets the factory tracks,
// with their gain-vector indices and price sources
func (s *Service) ListCollaterals(ctx context.Context) ([]*core.CollateralListing, error) {
	url := fmt.Sprintf("%s/api/collaterals", s.cfg.Factory.URL)
	resp, err := resthttp.WithToken(ctx, s.cfg.Factory.Token).Get(url)
	if err != nil {
		return nil, err
	}

	var listings []*core.CollateralListing
	if err := resthttp.ParseResponse(resp, &listings); err != nil {
		return nil, err
	}

	return listings, nil
}
