package oracle

import (
	"context"
	"encoding/base64"
	"time"

	"vault/core"
	"vault/pkg/id"
	"vault/pkg/resthttp"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/pandodao/blst"
	"github.com/shopspring/decimal"
)

// PriceService collateral price source. Every quote carries an
// aggregated BLS signature from the registered oracle signers and is
// rejected below the collateral's threshold.
type PriceService struct {
	cfg         *core.Config
	signerStore core.OracleSignerStore
	cache       gcache.Cache
}

// New new oracle price service
func New(cfg *core.Config, signerStr core.OracleSignerStore) core.IPriceOracleService {
	return &PriceService{
		cfg:         cfg,
		signerStore: signerStr,
		cache:       gcache.New(64).LRU().Build(),
	}
}

// GetPrice the verified spot price of a collateral asset
func (s *PriceService) GetPrice(ctx context.Context, collateral *core.Collateral, t time.Time) (decimal.Decimal, error) {
	log := logger.FromContext(ctx).WithField("service", "oracle")

	if cached, err := s.cache.Get(collateral.AssetID); err == nil {
		return cached.(decimal.Decimal), nil
	}

	data, err := s.pull(ctx, collateral, t)
	if err != nil {
		return decimal.Zero, err
	}

	signers, err := s.signers(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	if !data.Verify(signers, collateral.Threshold) {
		log.Errorln("price verify failed:", collateral.AssetID)
		return decimal.Zero, core.ErrInvalidPrice
	}

	if data.Price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, core.ErrInvalidPrice
	}

	_ = s.cache.SetWithExpire(collateral.AssetID, data.Price, time.Minute)

	return data.Price, nil
}

func (s *PriceService) pull(ctx context.Context, collateral *core.Collateral, t time.Time) (*core.PriceData, error) {
	url := collateral.OracleURL
	logger.FromContext(ctx).Debugln("pull price:", url)

	resp, err := resthttp.WithRequestID(ctx, id.GenTraceID()).
		SetQueryParam("ts", decimal.NewFromInt(t.UTC().Unix()).String()).
		Get(url)
	if err != nil {
		return nil, err
	}

	var data core.PriceData
	if err := resthttp.ParseResponse(resp, &data); err != nil {
		return nil, err
	}

	return &data, nil
}

func (s *PriceService) signers(ctx context.Context) ([]*core.Signer, error) {
	ss, err := s.signerStore.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	signers := make([]*core.Signer, 0, len(ss))
	for idx, signer := range ss {
		bts, err := base64.StdEncoding.DecodeString(signer.PublicKey)
		if err != nil {
			return nil, core.ErrInvalidPrice
		}

		pub := blst.PublicKey{}
		if err := pub.FromBytes(bts); err != nil {
			return nil, core.ErrInvalidPrice
		}

		signers = append(signers, &core.Signer{
			Index:     uint64(idx) + 1,
			VerifyKey: &pub,
		})
	}

	return signers, nil
}
