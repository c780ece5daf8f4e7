package collateralsync

import (
	"context"
	"time"

	"vault/core"
	"vault/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// Syncer keeps the local collateral index mapping aligned with the
// external factory listing
type Syncer struct {
	worker.TickWorker
	db              *db.DB
	collateralStore core.ICollateralStore
	factoryService  core.IFactoryService
}

// New new collateral syncer
func New(db *db.DB, collateralStr core.ICollateralStore, factorySrv core.IFactoryService, interval time.Duration) *Syncer {
	if interval <= 0 {
		interval = time.Hour
	}

	return &Syncer{
		TickWorker: worker.TickWorker{
			Delay:    interval,
			ErrDelay: time.Minute,
		},
		db:              db,
		collateralStore: collateralStr,
		factoryService:  factorySrv,
	}
}

// Run run worker
func (w *Syncer) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Syncer) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "collateralsync")

	listings, err := w.factoryService.ListCollaterals(ctx)
	if err != nil {
		log.WithError(err).Errorln("list collaterals")
		return err
	}

	existing := make(map[string]*core.Collateral)
	collaterals, err := w.collateralStore.All(ctx)
	if err != nil {
		return err
	}
	for _, collateral := range collaterals {
		existing[collateral.AssetID] = collateral
	}

	return w.db.Tx(func(tx *db.DB) error {
		for _, listing := range listings {
			collateral, ok := existing[listing.AssetID]
			if !ok {
				collateral = &core.Collateral{
					AssetID:   listing.AssetID,
					Symbol:    listing.Symbol,
					Index:     listing.Index,
					OracleURL: listing.OracleURL,
					Threshold: 1,
					Enabled:   true,
				}
				if err := w.collateralStore.Save(ctx, tx, collateral); err != nil {
					return err
				}

				log.Infoln("new collateral tracked:", listing.Symbol)
				continue
			}

			if collateral.Index != listing.Index || collateral.OracleURL != listing.OracleURL {
				collateral.Index = listing.Index
				collateral.OracleURL = listing.OracleURL
				if err := w.collateralStore.Update(ctx, tx, collateral); err != nil {
					return err
				}
			}
		}

		return nil
	})
}
