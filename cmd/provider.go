package cmd

import (
	"vault/core"

	"github.com/fox-one/pkg/store/db"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}
