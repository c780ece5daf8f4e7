package auction

import (
	"context"
	"errors"

	"vault/core"

	"github.com/fox-one/pkg/store/db"
)

type auctionStore struct {
	db *db.DB
}

// New new auction record store
func New(db *db.DB) core.IAuctionStore {
	return &auctionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.AuctionRecord{})
		if err := tx.AutoMigrate(core.AuctionRecord{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *auctionStore) Create(ctx context.Context, tx *db.DB, record *core.AuctionRecord) error {
	return tx.Update().Where("trace_id=?", record.TraceID).FirstOrCreate(record).Error
}

func (s *auctionStore) List(ctx context.Context, limit int) ([]*core.AuctionRecord, error) {
	if limit <= 0 {
		return nil, errors.New("invalid limit")
	}

	var records []*core.AuctionRecord
	if err := s.db.View().Order("id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
