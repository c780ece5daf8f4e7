package core

import (
	"context"
	"time"

	"github.com/fox-one/msgpack"
)

// RewardAdapter tagged registry entry describing how to stake and how
// to price one external reward token: a target address, an opaque call
// payload and a price-query selector, invoked through a generic
// "call with payload, verify balance delta" primitive.
type RewardAdapter struct {
	ID         uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID    string    `sql:"size:36;unique_index:adapter_asset_idx" json:"asset_id"`
	Target     string    `sql:"size:36" json:"target"`
	Payload    []byte    `sql:"type:varbinary(512)" json:"payload,omitempty"`
	PriceQuery string    `sql:"size:64" json:"price_query"`
	Enabled    bool      `sql:"default:true" json:"enabled"`
	CreatedAt  time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// AdapterCall decoded payload arguments
type AdapterCall struct {
	Method string   `json:"method" msgpack:"method"`
	Args   []string `json:"args" msgpack:"args"`
}

// EncodePayload encode call arguments into the registry payload
func (a *RewardAdapter) EncodePayload(call *AdapterCall) error {
	data, err := msgpack.Marshal(call)
	if err != nil {
		return err
	}

	a.Payload = data
	return nil
}

// DecodePayload decode the registry payload
func (a *RewardAdapter) DecodePayload() (*AdapterCall, error) {
	var call AdapterCall
	if err := msgpack.Unmarshal(a.Payload, &call); err != nil {
		return nil, err
	}

	return &call, nil
}

// IAdapterStore reward adapter store interface
type IAdapterStore interface {
	All(ctx context.Context) ([]*RewardAdapter, error)
	Find(ctx context.Context, assetID string) (*RewardAdapter, error)
	Save(ctx context.Context, adapter *RewardAdapter) error
}
