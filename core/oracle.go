package core

import (
	"context"
	"fmt"
	"time"

	"github.com/pandodao/blst"
	"github.com/shopspring/decimal"
)

// OracleSigner registered price feed signer
type OracleSigner struct {
	ID        int64     `sql:"PRIMARY_KEY" json:"id,omitempty"`
	UserID    string    `sql:"size:36;unique_index:idx_oracle_signers_user_id" json:"user_id,omitempty"`
	PublicKey string    `sql:"size:256" json:"public_key,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// OracleSignerStore oracle signer store interface
type OracleSignerStore interface {
	Save(ctx context.Context, userID, publicKey string) error
	Delete(ctx context.Context, userID string) error
	FindAll(ctx context.Context) ([]*OracleSigner, error)
}

// Signer a signer with its position in the signature mask
type Signer struct {
	Index     uint64          `json:"index,omitempty"`
	VerifyKey *blst.PublicKey `json:"verify_key,omitempty"`
}

// CosiSignature aggregated signature plus the mask of participants
type CosiSignature struct {
	Mask      uint64         `json:"mask"`
	Signature blst.Signature `json:"signature"`
}

// PriceData a signed spot price quote for one collateral asset
type PriceData struct {
	AssetID   string          `json:"asset_id"`
	Price     decimal.Decimal `json:"price"`
	Timestamp int64           `json:"timestamp"`
	Signature CosiSignature   `json:"signature"`
}

// Payload the signed message bytes
func (p *PriceData) Payload() []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", p.AssetID, p.Price.String(), p.Timestamp))
}

// Verify check the aggregated signature against the registered signers
func (p *PriceData) Verify(signers []*Signer, threshold int) bool {
	var pubs []*blst.PublicKey
	for _, signer := range signers {
		if p.Signature.Mask&(0x1<<signer.Index) != 0 {
			pubs = append(pubs, signer.VerifyKey)
		}
	}

	return len(pubs) >= threshold &&
		blst.AggregatePublicKeys(pubs).Verify(p.Payload(), &p.Signature.Signature)
}

// IPriceOracleService collateral spot price source
type IPriceOracleService interface {
	GetPrice(ctx context.Context, collateral *Collateral, t time.Time) (decimal.Decimal, error)
}
