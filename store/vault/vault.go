package vault

import (
	"context"

	"vault/core"

	"github.com/fox-one/pkg/store/db"
)

type vaultStore struct {
	db *db.DB
}

// New new vault store
func New(db *db.DB) core.IVaultStore {
	return &vaultStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Vault{})
		if err := tx.AutoMigrate(core.Vault{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *vaultStore) Get(ctx context.Context) (*core.Vault, error) {
	var vault core.Vault
	if err := s.db.View().Where("id=?", 1).First(&vault).Error; err != nil {
		return nil, err
	}

	return &vault, nil
}

func (s *vaultStore) Save(ctx context.Context, tx *db.DB, vault *core.Vault) error {
	vault.ID = 1
	return tx.Update().Where("id=?", 1).FirstOrCreate(vault).Error
}

func (s *vaultStore) Update(ctx context.Context, tx *db.DB, vault *core.Vault) error {
	version := vault.Version
	vault.Version++
	if err := tx.Update().Model(core.Vault{}).Where("id=? and version=?", vault.ID, version).Updates(vault).Error; err != nil {
		return err
	}

	return nil
}
