package delegate

import (
	"context"

	"vault/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type delegateStore struct {
	db *db.DB
}

// New new delegate store
func New(db *db.DB) core.IDelegateStore {
	return &delegateStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.BoostDelegate{})
		if err := tx.AutoMigrate(core.BoostDelegate{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// All delegates in registration order; the selector treats that order
// as priority among equal quotes
func (s *delegateStore) All(ctx context.Context) ([]*core.BoostDelegate, error) {
	var delegates []*core.BoostDelegate
	if err := s.db.View().Order("id ASC").Find(&delegates).Error; err != nil {
		return nil, err
	}

	return delegates, nil
}

func (s *delegateStore) Find(ctx context.Context, address string) (*core.BoostDelegate, error) {
	var delegate core.BoostDelegate
	if err := s.db.View().Where("address=?", address).First(&delegate).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	return &delegate, nil
}

func (s *delegateStore) Save(ctx context.Context, delegate *core.BoostDelegate) error {
	return s.db.Update().Where("address=?", delegate.Address).
		Assign(map[string]interface{}{
			"has_callback": delegate.HasCallback,
			"enabled":      delegate.Enabled,
		}).
		FirstOrCreate(delegate).Error
}
