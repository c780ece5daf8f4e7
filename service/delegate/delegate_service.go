package delegate

import (
	"context"

	"vault/core"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

var bpsScale = decimal.NewFromInt(10000)

// Selector picks the boost delegate achieving the highest net payout
// for a weekly reward pull
type Selector struct {
	delegateStore core.IDelegateStore
	feeQuote      core.IFeeQuoteService
}

// New new delegate selector
func New(delegateStr core.IDelegateStore, feeQuote core.IFeeQuoteService) core.IDelegateSelector {
	return &Selector{
		delegateStore: delegateStr,
		feeQuote:      feeQuote,
	}
}

// SelectBest iterate the registered delegates in registration order,
// then the no-delegate sentinel, then the optional extra candidate,
// keeping the first candidate achieving the strict maximum net amount.
// Ties keep the earliest seen, so registration order acts as priority.
func (s *Selector) SelectBest(ctx context.Context, claimant, receiver string, amount decimal.Decimal, extra string) (string, decimal.Decimal, error) {
	log := logger.FromContext(ctx).WithField("service", "delegate")

	registered, err := s.delegateStore.All(ctx)
	if err != nil {
		return core.NoDelegate, decimal.Zero, err
	}

	candidates := make([]string, 0, len(registered)+2)
	for _, d := range registered {
		if d.Enabled {
			candidates = append(candidates, d.Address)
		}
	}
	candidates = append(candidates, core.NoDelegate)
	if extra != core.NoDelegate {
		candidates = append(candidates, extra)
	}

	var (
		best    = core.NoDelegate
		bestNet = decimal.NewFromInt(-1)
	)

	for _, candidate := range candidates {
		fee, err := s.feeQuote.Quote(ctx, claimant, receiver, candidate, amount)
		if err != nil {
			return core.NoDelegate, decimal.Zero, err
		}

		if fee.Equal(core.FeeRejected) {
			continue
		}

		net := amount.Mul(bpsScale.Sub(fee)).Div(bpsScale)
		if net.GreaterThan(bestNet) {
			best = candidate
			bestNet = net
		}
	}

	log.Debugln("selected delegate", best, "net", bestNet)

	return best, bestNet, nil
}
