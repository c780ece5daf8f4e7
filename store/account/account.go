package account

import (
	"context"

	"vault/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type accountStore struct {
	db *db.DB
}

// New new account store
func New(db *db.DB) core.IAccountStore {
	return &accountStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Account{})
		if err := tx.AutoMigrate(core.Account{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.ClaimApproval{}).AutoMigrate(core.ClaimApproval{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *accountStore) Find(ctx context.Context, address string) (*core.Account, error) {
	var account core.Account
	if err := s.db.View().Where("address=?", address).First(&account).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrAccountNotFound
		}
		return nil, err
	}

	return &account, nil
}

func (s *accountStore) FindOrCreate(ctx context.Context, tx *db.DB, address string) (*core.Account, error) {
	account := core.Account{
		Address: address,
		Shares:  decimal.Zero,
	}
	if err := tx.Update().Where("address=?", address).FirstOrCreate(&account).Error; err != nil {
		return nil, err
	}

	return &account, nil
}

func (s *accountStore) Update(ctx context.Context, tx *db.DB, account *core.Account) error {
	version := account.Version
	account.Version++
	if err := tx.Update().Model(core.Account{}).Where("address=? and version=?", account.Address, version).Updates(account).Error; err != nil {
		return err
	}

	return nil
}

func (s *accountStore) All(ctx context.Context) ([]*core.Account, error) {
	var accounts []*core.Account
	if err := s.db.View().Find(&accounts).Error; err != nil {
		return nil, err
	}

	return accounts, nil
}

func (s *accountStore) SetApproval(ctx context.Context, account, operator string, approved bool) error {
	approval := core.ClaimApproval{
		Account:  account,
		Operator: operator,
	}

	return s.db.Update().
		Where("account=? and operator=?", account, operator).
		Assign(core.ClaimApproval{Account: account, Operator: operator, Approved: approved}).
		FirstOrCreate(&approval).Error
}

func (s *accountStore) IsApproved(ctx context.Context, account, operator string) (bool, error) {
	var approval core.ClaimApproval
	if err := s.db.View().Where("account=? and operator=?", account, operator).First(&approval).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return false, nil
		}
		return false, err
	}

	return approval.Approved, nil
}
