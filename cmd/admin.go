package cmd

import (
	"strings"

	"vault/core"
	vaultmath "vault/internal/vault"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// genesis: create the vault and basket rows with the shipped curve
var initVaultCmd = &cobra.Command{
	Use:   "init-vault",
	Short: "create the vault and basket rows",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		curve := vaultmath.DefaultCurve()

		vaultStore := provideVaultStore(database)
		if err := database.Tx(func(tx *db.DB) error {
			if err := vaultStore.Save(ctx, tx, &core.Vault{
				AssetID:            cfg.App.AssetID,
				ShareAssetID:       cfg.App.ShareAssetID,
				FastCutoff:         curve.FastCutoff,
				TerminalCutoff:     curve.TerminalCutoff,
				FastMultiplier:     curve.FastMultiplier,
				TerminalMultiplier: curve.TerminalMultiplier,
			}); err != nil {
				return err
			}

			basket := core.Basket{AssetID: cfg.App.BasketAssetID}
			basket.ID = 1
			return tx.Update().Where("id=?", 1).FirstOrCreate(&basket).Error
		}); err != nil {
			cmd.PrintErrln("init vault error:", err)
		}
	},
}

var setCurveCmd = &cobra.Command{
	Use:   "set-curve",
	Short: "update the discount curve parameters",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		curve := vaultmath.Curve{
			FastCutoff:         flagDecimal(cmd, "fast-cutoff"),
			TerminalCutoff:     flagDecimal(cmd, "terminal-cutoff"),
			FastMultiplier:     flagDecimal(cmd, "fast-multiplier"),
			TerminalMultiplier: flagDecimal(cmd, "terminal-multiplier"),
		}
		if err := curve.Validate(); err != nil {
			cmd.PrintErrln("invalid curve:", err)
			return
		}

		vaultStore := provideVaultStore(database)
		v, err := vaultStore.Get(ctx)
		if err != nil {
			cmd.PrintErrln("vault not initialized:", err)
			return
		}

		v.FastCutoff = curve.FastCutoff
		v.TerminalCutoff = curve.TerminalCutoff
		v.FastMultiplier = curve.FastMultiplier
		v.TerminalMultiplier = curve.TerminalMultiplier

		if err := database.Tx(func(tx *db.DB) error {
			return vaultStore.Update(ctx, tx, v)
		}); err != nil {
			cmd.PrintErrln("set curve error:", err)
		}
	},
}

var setTopUpCmd = &cobra.Command{
	Use:   "set-topup",
	Short: "set the weekly top-up account and amount",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		account, _ := cmd.Flags().GetString("account")
		amount := flagDecimal(cmd, "amount")
		if amount.IsNegative() {
			cmd.PrintErrln("invalid amount")
			return
		}

		vaultStore := provideVaultStore(database)
		v, err := vaultStore.Get(ctx)
		if err != nil {
			cmd.PrintErrln("vault not initialized:", err)
			return
		}

		v.TopUpAccount = account
		v.TopUpAmount = amount

		if err := database.Tx(func(tx *db.DB) error {
			return vaultStore.Update(ctx, tx, v)
		}); err != nil {
			cmd.PrintErrln("set topup error:", err)
		}
	},
}

var addLockerCmd = &cobra.Command{
	Use:   "add-locker",
	Short: "register a liquid locker token",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		assetID, _ := cmd.Flags().GetString("asset")
		symbol, _ := cmd.Flags().GetString("symbol")
		receiver, _ := cmd.Flags().GetString("receiver")
		if assetID == "" || receiver == "" {
			cmd.PrintErrln("asset and receiver are required")
			return
		}

		lockerStore := provideLockerStore(database)
		if err := database.Tx(func(tx *db.DB) error {
			return lockerStore.Save(ctx, tx, &core.LiquidLocker{
				AssetID:      assetID,
				Symbol:       symbol,
				Receiver:     receiver,
				MintActive:   true,
				RedeemActive: true,
			})
		}); err != nil {
			cmd.PrintErrln("add locker error:", err)
		}
	},
}

var configureLockerCmd = &cobra.Command{
	Use:   "configure-locker",
	Short: "update a locker's receiver and flags",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		caller, _ := cmd.Flags().GetString("caller")
		index := cast.ToInt(cmd.Flag("index").Value.String())
		receiver, _ := cmd.Flags().GetString("receiver")
		mintActive, _ := cmd.Flags().GetBool("mint")
		redeemActive, _ := cmd.Flags().GetBool("redeem")

		basketService := provideBasketService(database)
		if err := basketService.Configure(ctx, caller, index, receiver, mintActive, redeemActive); err != nil {
			cmd.PrintErrln("configure locker error:", err)
		}
	},
}

var addSignerCmd = &cobra.Command{
	Use:   "add-signer",
	Short: "register an oracle price signer",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		userID, _ := cmd.Flags().GetString("user")
		publicKey, _ := cmd.Flags().GetString("key")
		if userID == "" || publicKey == "" {
			cmd.PrintErrln("user and key are required")
			return
		}

		if err := provideOracleSignerStore(database).Save(ctx, userID, publicKey); err != nil {
			cmd.PrintErrln("add signer error:", err)
		}
	},
}

var addDelegateCmd = &cobra.Command{
	Use:   "add-delegate",
	Short: "register a boost delegate",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		address, _ := cmd.Flags().GetString("address")
		hasCallback, _ := cmd.Flags().GetBool("callback")
		enabled, _ := cmd.Flags().GetBool("enabled")
		if address == "" {
			cmd.PrintErrln("address is required")
			return
		}

		if err := provideDelegateStore(database).Save(ctx, &core.BoostDelegate{
			Address:     address,
			HasCallback: hasCallback,
			Enabled:     enabled,
		}); err != nil {
			cmd.PrintErrln("add delegate error:", err)
		}
	},
}

var addAdapterCmd = &cobra.Command{
	Use:   "add-adapter",
	Short: "register a reward token adapter",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		assetID, _ := cmd.Flags().GetString("asset")
		target, _ := cmd.Flags().GetString("target")
		method, _ := cmd.Flags().GetString("method")
		callArgs, _ := cmd.Flags().GetStringSlice("args")
		priceQuery, _ := cmd.Flags().GetString("price-query")
		if assetID == "" || target == "" {
			cmd.PrintErrln("asset and target are required")
			return
		}

		adapter := &core.RewardAdapter{
			AssetID:    assetID,
			Target:     target,
			PriceQuery: priceQuery,
			Enabled:    true,
		}
		if err := adapter.EncodePayload(&core.AdapterCall{
			Method: method,
			Args:   callArgs,
		}); err != nil {
			cmd.PrintErrln("encode payload error:", err)
			return
		}

		if err := provideAdapterStore(database).Save(ctx, adapter); err != nil {
			cmd.PrintErrln("add adapter error:", err)
		}
	},
}

var approveClaimerCmd = &cobra.Command{
	Use:   "approve-claimer",
	Short: "set a claim-on-behalf approval",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		account, _ := cmd.Flags().GetString("account")
		operator, _ := cmd.Flags().GetString("operator")
		approved, _ := cmd.Flags().GetBool("approved")
		if account == "" || operator == "" {
			cmd.PrintErrln("account and operator are required")
			return
		}

		if err := provideAccountStore(database).SetApproval(ctx, account, operator, approved); err != nil {
			cmd.PrintErrln("approve claimer error:", err)
		}
	},
}

var fetchRewardsCmd = &cobra.Command{
	Use:   "fetch-rewards",
	Short: "trigger the weekly reward refresh, optionally nominating an extra delegate",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		delegate, _ := cmd.Flags().GetString("delegate")

		rewardService := provideRewardService(database)
		if err := rewardService.FetchRewards(ctx, delegate); err != nil {
			cmd.PrintErrln("fetch rewards error:", err)
			return
		}

		cmd.Println("rewards fetched")
	},
}

var listAdaptersCmd = &cobra.Command{
	Use:   "list-adapters",
	Short: "print the registered reward adapters and their staking calls",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		adapters, err := provideAdapterStore(database).All(ctx)
		if err != nil {
			cmd.PrintErrln("list adapters error:", err)
			return
		}

		for _, adapter := range adapters {
			call, err := adapter.DecodePayload()
			if err != nil {
				cmd.PrintErrln(adapter.AssetID, "bad payload:", err)
				continue
			}

			cmd.Printf("%s -> %s %s(%s) enabled=%v\n",
				adapter.AssetID, adapter.Target, call.Method, strings.Join(call.Args, ","), adapter.Enabled)
		}
	},
}

var sweepLockerCmd = &cobra.Command{
	Use:   "sweep-locker",
	Short: "recover a locker's balance in excess of the tracked amount",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		caller, _ := cmd.Flags().GetString("caller")
		index := cast.ToInt(cmd.Flag("index").Value.String())
		receiver, _ := cmd.Flags().GetString("receiver")
		if receiver == "" {
			cmd.PrintErrln("receiver is required")
			return
		}

		basketService := provideBasketService(database)
		if err := basketService.Sweep(ctx, caller, index, receiver); err != nil {
			cmd.PrintErrln("sweep locker error:", err)
		}
	},
}

func flagDecimal(cmd *cobra.Command, name string) decimal.Decimal {
	value, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}

	return d
}

func init() {
	rootCmd.AddCommand(initVaultCmd)

	rootCmd.AddCommand(setCurveCmd)
	setCurveCmd.Flags().String("fast-cutoff", "1.03", "fast cutoff gain ratio")
	setCurveCmd.Flags().String("terminal-cutoff", "1.10", "terminal cutoff gain ratio")
	setCurveCmd.Flags().String("fast-multiplier", "0.97", "fast multiplier")
	setCurveCmd.Flags().String("terminal-multiplier", "0.99", "terminal multiplier")

	rootCmd.AddCommand(setTopUpCmd)
	setTopUpCmd.Flags().String("account", "", "top-up source account")
	setTopUpCmd.Flags().String("amount", "0", "weekly top-up amount")

	rootCmd.AddCommand(addLockerCmd)
	addLockerCmd.Flags().String("asset", "", "locker token asset id")
	addLockerCmd.Flags().String("symbol", "", "locker token symbol")
	addLockerCmd.Flags().String("receiver", "", "locker deposit receiver")

	rootCmd.AddCommand(configureLockerCmd)
	configureLockerCmd.Flags().String("caller", "", "admin account")
	configureLockerCmd.Flags().Int("index", 0, "locker index")
	configureLockerCmd.Flags().String("receiver", "", "locker deposit receiver")
	configureLockerCmd.Flags().Bool("mint", true, "accept mints")
	configureLockerCmd.Flags().Bool("redeem", true, "allow redemptions")

	rootCmd.AddCommand(fetchRewardsCmd)
	fetchRewardsCmd.Flags().String("delegate", core.NoDelegate, "extra one-off delegate candidate")

	rootCmd.AddCommand(listAdaptersCmd)

	rootCmd.AddCommand(sweepLockerCmd)
	sweepLockerCmd.Flags().String("caller", "", "admin account")
	sweepLockerCmd.Flags().Int("index", 0, "locker index")
	sweepLockerCmd.Flags().String("receiver", "", "sweep receiver")

	rootCmd.AddCommand(addSignerCmd)
	addSignerCmd.Flags().String("user", "", "signer user id")
	addSignerCmd.Flags().String("key", "", "signer blst public key")

	rootCmd.AddCommand(addDelegateCmd)
	addDelegateCmd.Flags().String("address", "", "delegate address")
	addDelegateCmd.Flags().Bool("callback", false, "delegate has a forwarding callback")
	addDelegateCmd.Flags().Bool("enabled", true, "delegate enabled")

	rootCmd.AddCommand(addAdapterCmd)
	addAdapterCmd.Flags().String("asset", "", "reward token asset id")
	addAdapterCmd.Flags().String("target", "", "staking target address")
	addAdapterCmd.Flags().String("method", "", "staking call method")
	addAdapterCmd.Flags().StringSlice("args", nil, "staking call args")
	addAdapterCmd.Flags().String("price-query", "", "price query selector")

	rootCmd.AddCommand(approveClaimerCmd)
	approveClaimerCmd.Flags().String("account", "", "share account")
	approveClaimerCmd.Flags().String("operator", "", "operator account")
	approveClaimerCmd.Flags().Bool("approved", true, "approval flag")
}
