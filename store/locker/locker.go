package locker

import (
	"context"

	"vault/core"

	"github.com/fox-one/pkg/store/db"
)

type lockerStore struct {
	db *db.DB
}

// New new locker store
func New(db *db.DB) core.ILockerStore {
	return &lockerStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		if err := db.Update().Model(core.LiquidLocker{}).AutoMigrate(core.LiquidLocker{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.Basket{}).AutoMigrate(core.Basket{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// All lockers in registration order; list position is the locker index
func (s *lockerStore) All(ctx context.Context) ([]*core.LiquidLocker, error) {
	var lockers []*core.LiquidLocker
	if err := s.db.View().Order("id ASC").Find(&lockers).Error; err != nil {
		return nil, err
	}

	return lockers, nil
}

func (s *lockerStore) Find(ctx context.Context, index int) (*core.LiquidLocker, error) {
	if index < 0 {
		return nil, core.ErrLockerNotFound
	}

	var lockers []*core.LiquidLocker
	if err := s.db.View().Order("id ASC").Offset(index).Limit(1).Find(&lockers).Error; err != nil {
		return nil, err
	}

	if len(lockers) == 0 {
		return nil, core.ErrLockerNotFound
	}

	return lockers[0], nil
}

func (s *lockerStore) Save(ctx context.Context, tx *db.DB, locker *core.LiquidLocker) error {
	return tx.Update().Where("asset_id=?", locker.AssetID).FirstOrCreate(locker).Error
}

func (s *lockerStore) Update(ctx context.Context, tx *db.DB, locker *core.LiquidLocker) error {
	version := locker.Version
	locker.Version++
	return tx.Update().Model(core.LiquidLocker{}).
		Where("id=? and version=?", locker.ID, version).
		Updates(map[string]interface{}{
			"receiver":        locker.Receiver,
			"tracked_balance": locker.TrackedBalance,
			"mint_active":     locker.MintActive,
			"redeem_active":   locker.RedeemActive,
			"version":         locker.Version,
		}).Error
}

func (s *lockerStore) Basket(ctx context.Context) (*core.Basket, error) {
	var basket core.Basket
	if err := s.db.View().Where("id=?", 1).First(&basket).Error; err != nil {
		return nil, err
	}

	return &basket, nil
}

func (s *lockerStore) UpdateBasket(ctx context.Context, tx *db.DB, basket *core.Basket) error {
	version := basket.Version
	basket.Version++
	return tx.Update().Model(core.Basket{}).
		Where("id=? and version=?", basket.ID, version).
		Updates(map[string]interface{}{
			"locker_index": basket.LockerIndex,
			"total_supply": basket.TotalSupply,
			"version":      basket.Version,
		}).Error
}
