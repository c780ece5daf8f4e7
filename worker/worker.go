package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// Worker long running job
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker base for workers polling on a fixed interval
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick run f on every tick until the context ends; an error from
// f stretches the wait to ErrDelay
func (w *TickWorker) StartTick(ctx context.Context, f func(ctx context.Context) error) error {
	delay := w.Delay
	if delay <= 0 {
		delay = time.Second
	}

	errDelay := w.ErrDelay
	if errDelay <= 0 {
		errDelay = 10 * time.Second
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			wait := delay
			if err := f(ctx); err != nil {
				wait = errDelay
			}

			timer.Reset(wait)
		}
	}
}

// OnWork job callback
type OnWork func() error

// BaseJob cron scheduled job
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork
}

// Start start the cron scheduler
func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

// Stop stop the cron scheduler
func (job *BaseJob) Stop() error {
	job.Cron.Stop()
	return nil
}

// Run run once, skipping overlapping invocations
func (job *BaseJob) Run() {
	if job.IsRunning {
		return
	}

	job.IsRunning = true
	_ = job.OnWork()
	job.IsRunning = false
}
