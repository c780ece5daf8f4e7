package payout

import (
	"context"
	"time"

	"vault/core"
	"vault/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/errgroup"
)

// Payout drains the queued transfers through the treasury wallet
type Payout struct {
	worker.TickWorker
	db            *db.DB
	transferStore core.ITransferStore
	walletService core.IWalletService
	batch         int
}

// New new payout worker
func New(db *db.DB, transferStr core.ITransferStore, walletSrv core.IWalletService, batch int) *Payout {
	if batch <= 0 {
		batch = 100
	}

	return &Payout{
		TickWorker: worker.TickWorker{
			Delay:    300 * time.Millisecond,
			ErrDelay: time.Second,
		},
		db:            db,
		transferStore: transferStr,
		walletService: walletSrv,
		batch:         batch,
	}
}

// Run run worker
func (w *Payout) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Payout) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "payout")

	transfers, err := w.transferStore.Top(ctx, w.batch)
	if err != nil {
		log.WithError(err).Errorln("transfers.Top")
		return err
	}

	if len(transfers) == 0 {
		return nil
	}

	var g errgroup.Group
	g.SetLimit(10)

	done := make([]uint64, len(transfers))
	for idx, transfer := range transfers {
		idx, transfer := idx, transfer
		g.Go(func() error {
			if err := w.walletService.HandleTransfer(ctx, transfer); err != nil {
				log.WithError(err).Errorln("handle transfer", transfer.TraceID)
				return err
			}

			done[idx] = transfer.ID
			return nil
		})
	}

	// a failed transfer stays queued; the ones that went through are
	// still deleted so the next tick does not replay them.
	err = g.Wait()

	var ids []uint64
	for _, id := range done {
		if id > 0 {
			ids = append(ids, id)
		}
	}

	if len(ids) > 0 {
		if e := w.db.Tx(func(tx *db.DB) error {
			return w.transferStore.Delete(ctx, tx, ids...)
		}); e != nil {
			return e
		}
	}

	return err
}
