package core

import (
	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
)

// Config vault config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	Pool        Endpoint    `json:"pool"`
	Factory     Endpoint    `json:"factory"`
	Distributor Distributor `json:"distributor"`
	Treasury    Endpoint    `json:"treasury"`
	Admins      []string    `json:"admins"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	if len(c.Admins) <= 0 {
		return false
	}

	return govalidator.IsIn(userID, c.Admins...)
}

// App app config
type App struct {
	AssetID         string `json:"asset_id"`
	ShareAssetID    string `json:"share_asset_id"`
	BasketAssetID   string `json:"basket_asset_id"`
	PrimaryAssetID  string `json:"primary_asset_id"`
	VaultAddress    string `json:"vault_address"`
	FeeReceiver     string `json:"fee_receiver"`
	OracleThreshold int    `json:"oracle_threshold"`
	Location        string `json:"location"`
}

// Endpoint a plain http collaborator
type Endpoint struct {
	URL   string `json:"url"`
	Token string `json:"token,omitempty"`
}

// Distributor external reward distributor config
type Distributor struct {
	Endpoint
	Registry  string   `json:"registry"`
	Sources   []string `json:"sources"`
	MaxFeeBps int      `json:"max_fee_bps"`
}
