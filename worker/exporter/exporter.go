package exporter

import (
	"context"
	"time"

	"vault/core"
	"vault/worker"

	"github.com/dustin/go-humanize"
	"github.com/fox-one/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
)

// Exporter refreshes the prometheus gauges describing the vault's
// current accounting state
type Exporter struct {
	worker.TickWorker
	vaultStore  core.IVaultStore
	rewardStore core.IRewardStore
	lockerStore core.ILockerStore

	deposits     prometheus.Gauge
	totalShares  prometheus.Gauge
	rewardRates  *prometheus.GaugeVec
	basketSupply prometheus.Gauge
}

// New new exporter worker
func New(vaultStr core.IVaultStore, rewardStr core.IRewardStore, lockerStr core.ILockerStore) *Exporter {
	w := &Exporter{
		TickWorker: worker.TickWorker{
			Delay:    time.Minute,
			ErrDelay: time.Minute,
		},
		vaultStore:  vaultStr,
		rewardStore: rewardStr,
		lockerStore: lockerStr,
		deposits: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vault_deposits",
			Help: "Tracked stability pool deposits backing the shares.",
		}),
		totalShares: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vault_total_shares",
			Help: "Outstanding share token supply.",
		}),
		rewardRates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vault_reward_rate",
			Help: "Per-second reward emission rate by channel.",
		}, []string{"channel"}),
		basketSupply: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vault_basket_supply",
			Help: "Liquid locker basket total supply.",
		}),
	}

	prometheus.MustRegister(
		w.deposits,
		w.totalShares,
		w.rewardRates,
		w.basketSupply,
	)

	return w
}

// Run run worker
func (w *Exporter) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Exporter) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "exporter")

	v, err := w.vaultStore.Get(ctx)
	if err != nil {
		log.WithError(err).Errorln("vaults.Get")
		return err
	}

	deposits, _ := v.Deposits.Float64()
	shares, _ := v.TotalShares.Float64()
	w.deposits.Set(deposits)
	w.totalShares.Set(shares)

	states, err := w.rewardStore.States(ctx)
	if err != nil {
		return err
	}
	for _, state := range states {
		rate, _ := state.Rate.Float64()
		w.rewardRates.WithLabelValues(state.Channel.String()).Set(rate)
	}

	basket, err := w.lockerStore.Basket(ctx)
	if err != nil {
		return err
	}
	supply, _ := basket.TotalSupply.Float64()
	w.basketSupply.Set(supply)

	log.Debugf("deposits %s, shares %s, basket %s",
		humanize.CommafWithDigits(deposits, 2),
		humanize.CommafWithDigits(shares, 2),
		humanize.CommafWithDigits(supply, 2))

	return nil
}
