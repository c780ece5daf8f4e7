package config

import (
	"vault/core"

	"github.com/fox-one/pkg/config"
)

// Load load config file
func Load(cfgFile string, cfg *core.Config) error {
	config.AutomaticLoadEnv("VAULT")
	if err := config.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	defaults(cfg)
	return nil
}

func defaults(cfg *core.Config) {
	if cfg.App.OracleThreshold <= 0 {
		cfg.App.OracleThreshold = 1
	}

	if cfg.Distributor.MaxFeeBps <= 0 {
		cfg.Distributor.MaxFeeBps = 10000
	}
}
