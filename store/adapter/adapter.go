package adapter

import (
	"context"

	"vault/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type adapterStore struct {
	db *db.DB
}

// New new reward adapter store
func New(db *db.DB) core.IAdapterStore {
	return &adapterStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.RewardAdapter{})
		if err := tx.AutoMigrate(core.RewardAdapter{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *adapterStore) All(ctx context.Context) ([]*core.RewardAdapter, error) {
	var adapters []*core.RewardAdapter
	if err := s.db.View().Order("id ASC").Find(&adapters).Error; err != nil {
		return nil, err
	}

	return adapters, nil
}

func (s *adapterStore) Find(ctx context.Context, assetID string) (*core.RewardAdapter, error) {
	var adapter core.RewardAdapter
	if err := s.db.View().Where("asset_id=?", assetID).First(&adapter).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrRewardTokenNotFound
		}
		return nil, err
	}

	return &adapter, nil
}

func (s *adapterStore) Save(ctx context.Context, adapter *core.RewardAdapter) error {
	return s.db.Update().Where("asset_id=?", adapter.AssetID).
		Assign(map[string]interface{}{
			"target":      adapter.Target,
			"payload":     adapter.Payload,
			"price_query": adapter.PriceQuery,
			"enabled":     adapter.Enabled,
		}).
		FirstOrCreate(adapter).Error
}
