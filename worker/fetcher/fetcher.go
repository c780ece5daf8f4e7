package fetcher

import (
	"context"
	"time"

	"vault/core"
	"vault/internal/vault"
	"vault/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cast"
)

const lastFetchWeekKey = "reward_last_fetch_week"

// Fetcher triggers the weekly reward refresh once the clock crosses a
// week boundary past the active period
type Fetcher struct {
	worker.BaseJob
	cfg           *core.Config
	rewardService core.IRewardService
	propertyStore property.Store
}

// New new fetcher worker
func New(cfg *core.Config, rewardSrv core.IRewardService, propertyStr property.Store) *Fetcher {
	job := Fetcher{
		cfg:           cfg,
		rewardService: rewardSrv,
		propertyStore: propertyStr,
	}

	l, _ := time.LoadLocation(cfg.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 10m"
	job.Cron.AddFunc(spec, job.BaseJob.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

// Run run worker
func (w *Fetcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	return w.Stop()
}

func (w *Fetcher) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "fetcher")

	week := vault.Week(time.Now().Unix())

	value, err := w.propertyStore.Get(ctx, lastFetchWeekKey)
	if err != nil {
		log.WithError(err).Errorln("read last fetch week")
		return err
	}

	if cast.ToInt64(value.String()) >= week {
		return nil
	}

	if err := w.rewardService.FetchRewards(ctx, core.NoDelegate); err != nil {
		if err == core.ErrFetchTooSoon {
			return nil
		}

		log.WithError(err).Errorln("fetch rewards")
		return err
	}

	if err := w.propertyStore.Save(ctx, lastFetchWeekKey, week); err != nil {
		log.WithError(err).Errorln("save last fetch week")
		return err
	}

	log.Infoln("reward refresh done for week", week)
	return nil
}
