package views

import (
	"vault/core"

	"github.com/shopspring/decimal"
)

// Vault vault view
type Vault struct {
	core.Vault
	SharePrice decimal.Decimal `json:"share_price"`
}

// Account account view
type Account struct {
	core.Account
	Value decimal.Decimal `json:"value"`
}

// Basket basket view
type Basket struct {
	core.Basket
	Lockers []*core.LiquidLocker `json:"lockers"`
}
