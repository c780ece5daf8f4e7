package collateral

import (
	"context"

	"vault/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type collateralStore struct {
	db *db.DB
}

// New new collateral store
func New(db *db.DB) core.ICollateralStore {
	return &collateralStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Collateral{})
		if err := tx.AutoMigrate(core.Collateral{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *collateralStore) All(ctx context.Context) ([]*core.Collateral, error) {
	var collaterals []*core.Collateral
	if err := s.db.View().Order("`index` ASC").Find(&collaterals).Error; err != nil {
		return nil, err
	}

	return collaterals, nil
}

func (s *collateralStore) Find(ctx context.Context, assetID string) (*core.Collateral, error) {
	var collateral core.Collateral
	if err := s.db.View().Where("asset_id=?", assetID).First(&collateral).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrCollateralNotFound
		}
		return nil, err
	}

	return &collateral, nil
}

func (s *collateralStore) ByIndex(ctx context.Context) (map[int]*core.Collateral, error) {
	collaterals, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[int]*core.Collateral, len(collaterals))
	for _, collateral := range collaterals {
		out[collateral.Index] = collateral
	}

	return out, nil
}

func (s *collateralStore) Save(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	return tx.Update().Where("asset_id=?", collateral.AssetID).FirstOrCreate(collateral).Error
}

func (s *collateralStore) Update(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	version := collateral.Version
	collateral.Version++
	return tx.Update().Model(core.Collateral{}).
		Where("id=? and version=?", collateral.ID, version).
		Updates(map[string]interface{}{
			"symbol":     collateral.Symbol,
			"index":      collateral.Index,
			"oracle_url": collateral.OracleURL,
			"threshold":  collateral.Threshold,
			"enabled":    collateral.Enabled,
			"version":    collateral.Version,
		}).Error
}
