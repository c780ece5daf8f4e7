package cmd

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"vault/handler/hc"
	"vault/worker"
	"vault/worker/collateralsync"
	"vault/worker/exporter"
	"vault/worker/fetcher"
	"vault/worker/payout"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yiplee/structs"
)

// workerOptions flag-bound worker tunables
type workerOptions struct {
	Port         int           `json:"port"`
	PayoutBatch  int           `json:"payout_batch"`
	SyncInterval time.Duration `json:"sync_interval"`
}

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "vault job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		var opt workerOptions
		opt.Port, _ = cmd.Flags().GetInt("port")
		opt.PayoutBatch, _ = cmd.Flags().GetInt("payout-batch")
		opt.SyncInterval, _ = cmd.Flags().GetDuration("sync-interval")

		log := logger.FromContext(ctx).WithFields(logrus.Fields(structs.Map(opt)))
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		propertyStore := providePropertyStore(database)
		vaultStore := provideVaultStore(database)
		rewardStore := provideRewardStore(database)
		lockerStore := provideLockerStore(database)
		collateralStore := provideCollateralStore(database)
		transferStore := provideTransferStore(database)

		rewardService := provideRewardService(database)
		factoryService := provideFactoryService()
		walletService := provideWalletService()

		workers := []worker.Worker{
			fetcher.New(provideConfig(), rewardService, propertyStore),
			collateralsync.New(database, collateralStore, factoryService, opt.SyncInterval),
			payout.New(database, transferStore, walletService, opt.PayoutBatch),
			exporter.New(vaultStore, rewardStore, lockerStore),
		}

		// the exporter's gauges live in this process, so the scrape
		// endpoint has to as well
		go func() {
			mux := chi.NewMux()
			mux.Mount("/hc", hc.Handle(rootCmd.Version))
			mux.Mount("/metrics", promhttp.Handler())

			addr := fmt.Sprintf(":%d", opt.Port)
			log.Infoln("serve metrics at", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.WithError(err).Errorln("metrics server aborted")
			}
		}()

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				_ = worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().Int("port", 9301, "metrics port")
	workerCmd.Flags().Int("payout-batch", 100, "transfers drained per payout tick")
	workerCmd.Flags().Duration("sync-interval", time.Hour, "collateral listing sync interval")
}
