package delegate

import (
	"context"
	"testing"

	"vault/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDelegateStore struct {
	delegates []*core.BoostDelegate
}

func (s *stubDelegateStore) All(ctx context.Context) ([]*core.BoostDelegate, error) {
	return s.delegates, nil
}

func (s *stubDelegateStore) Find(ctx context.Context, address string) (*core.BoostDelegate, error) {
	for _, d := range s.delegates {
		if d.Address == address {
			return d, nil
		}
	}
	return nil, core.ErrAccountNotFound
}

func (s *stubDelegateStore) Save(ctx context.Context, delegate *core.BoostDelegate) error {
	s.delegates = append(s.delegates, delegate)
	return nil
}

// fee bps per delegate address; missing means rejected
type stubFeeQuote struct {
	fees map[string]decimal.Decimal
}

func (s *stubFeeQuote) Quote(ctx context.Context, claimant, receiver, delegate string, amount decimal.Decimal) (decimal.Decimal, error) {
	fee, ok := s.fees[delegate]
	if !ok {
		return core.FeeRejected, nil
	}
	return fee, nil
}

func TestSelectBest(t *testing.T) {
	ctx := context.Background()
	amount := decimal.NewFromInt(1000)

	store := &stubDelegateStore{
		delegates: []*core.BoostDelegate{
			{Address: "alpha", Enabled: true},
			{Address: "bravo", Enabled: true},
			{Address: "frozen", Enabled: false},
		},
	}

	t.Run("lowest fee wins", func(t *testing.T) {
		selector := New(store, &stubFeeQuote{fees: map[string]decimal.Decimal{
			"alpha":         decimal.NewFromInt(200),
			"bravo":         decimal.NewFromInt(100),
			core.NoDelegate: decimal.NewFromInt(300),
		}})

		best, net, err := selector.SelectBest(ctx, "claimant", "receiver", amount, core.NoDelegate)
		require.Nil(t, err)
		assert.Equal(t, "bravo", best)
		assert.True(t, net.Equal(decimal.NewFromInt(990)))
	})

	t.Run("ties keep registration order", func(t *testing.T) {
		selector := New(store, &stubFeeQuote{fees: map[string]decimal.Decimal{
			"alpha":         decimal.NewFromInt(100),
			"bravo":         decimal.NewFromInt(100),
			core.NoDelegate: decimal.NewFromInt(100),
		}})

		best, _, err := selector.SelectBest(ctx, "claimant", "receiver", amount, core.NoDelegate)
		require.Nil(t, err)
		assert.Equal(t, "alpha", best)
	})

	t.Run("rejections are skipped", func(t *testing.T) {
		selector := New(store, &stubFeeQuote{fees: map[string]decimal.Decimal{
			core.NoDelegate: decimal.NewFromInt(500),
		}})

		best, net, err := selector.SelectBest(ctx, "claimant", "receiver", amount, core.NoDelegate)
		require.Nil(t, err)
		assert.Equal(t, core.NoDelegate, best)
		assert.True(t, net.Equal(decimal.NewFromInt(950)))
	})

	t.Run("disabled delegates are not quoted", func(t *testing.T) {
		selector := New(store, &stubFeeQuote{fees: map[string]decimal.Decimal{
			"frozen":        decimal.Zero,
			core.NoDelegate: decimal.NewFromInt(100),
		}})

		best, _, err := selector.SelectBest(ctx, "claimant", "receiver", amount, core.NoDelegate)
		require.Nil(t, err)
		assert.Equal(t, core.NoDelegate, best)
	})

	t.Run("extra candidate can win", func(t *testing.T) {
		selector := New(store, &stubFeeQuote{fees: map[string]decimal.Decimal{
			"alpha":         decimal.NewFromInt(300),
			core.NoDelegate: decimal.NewFromInt(200),
			"extra":         decimal.Zero,
		}})

		best, net, err := selector.SelectBest(ctx, "claimant", "receiver", amount, "extra")
		require.Nil(t, err)
		assert.Equal(t, "extra", best)
		assert.True(t, net.Equal(amount))
	})
}
