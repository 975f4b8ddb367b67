package jsonmodels

import (
	"github.com/cockroachdb/errors"

	"github.com/proximax-storage/sirius-client-go/packages/asset"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

// region Uint64DTO ////////////////////////////////////////////////////////////////////////////////////////////////////

// Uint64DTO represents the JSON model of a types.Uint64: [low, high].
type Uint64DTO [2]uint32

// NewUint64DTO returns a Uint64DTO from the given types.Uint64.
func NewUint64DTO(value types.Uint64) Uint64DTO {
	return value.IntArray()
}

// ToUint64 converts the DTO into a types.Uint64.
func (u Uint64DTO) ToUint64() types.Uint64 {
	return types.Uint64FromIntArray(u)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Mosaic ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Mosaic represents the JSON model of an asset.Mosaic.
type Mosaic struct {
	ID     Uint64DTO `json:"id"`
	Amount Uint64DTO `json:"amount"`
}

// NewMosaic returns a Mosaic from the given asset.Mosaic.
func NewMosaic(mosaic *asset.Mosaic) *Mosaic {
	return &Mosaic{
		ID:     NewUint64DTO(mosaic.AssetID.ID()),
		Amount: NewUint64DTO(mosaic.Amount),
	}
}

// ToMosaic converts the DTO into an asset.Mosaic. The id is routed to a MosaicID or NamespaceID by its top bit.
func (m *Mosaic) ToMosaic() (*asset.Mosaic, error) {
	return asset.NewMosaic(asset.AssetIDFromUint64(m.ID.ToUint64()), m.Amount.ToUint64().Uint64())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MosaicProperty ///////////////////////////////////////////////////////////////////////////////////////////////

// MosaicProperty represents the JSON model of an asset.MosaicProperty.
type MosaicProperty struct {
	ID    uint8     `json:"id"`
	Value Uint64DTO `json:"value"`
}

// ToMosaicProperties converts a property list into asset.MosaicProperties.
func ToMosaicProperties(properties []*MosaicProperty) (*asset.MosaicProperties, error) {
	list := make([]*asset.MosaicProperty, len(properties))
	for i, property := range properties {
		mosaicProperty, err := asset.NewMosaicProperty(asset.MosaicPropertyID(property.ID), property.Value.ToUint64())
		if err != nil {
			return nil, errors.Errorf("failed to parse mosaic property %d: %w", i, err)
		}
		list[i] = mosaicProperty
	}

	return asset.MosaicPropertiesFromList(list)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Network //////////////////////////////////////////////////////////////////////////////////////////////////////

// Network represents the JSON model of the /network endpoint.
type Network struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Block ////////////////////////////////////////////////////////////////////////////////////////////////////////

// BlockMeta represents the JSON model of the metadata of a block.
type BlockMeta struct {
	Hash            string    `json:"hash"`
	GenerationHash  string    `json:"generationHash"`
	TotalFee        Uint64DTO `json:"totalFee"`
	NumTransactions uint32    `json:"numTransactions"`
	ChannelName     string    `json:"channelName,omitempty"`
}

// BlockHeader represents the JSON model of the header of a block.
type BlockHeader struct {
	Signature string    `json:"signature"`
	Signer    string    `json:"signer"`
	Version   uint32    `json:"version"`
	Type      uint16    `json:"type"`
	Height    Uint64DTO `json:"height"`
	Timestamp Uint64DTO `json:"timestamp"`
}

// Block represents the JSON model of a block as returned by /block/{height} and the block channel.
type Block struct {
	Meta  BlockMeta   `json:"meta"`
	Block BlockHeader `json:"block"`
}

// GenerationHash parses the generation hash of the block.
func (b *Block) GenerationHash() (types.Hash, error) {
	return types.HashFromHex(b.Meta.GenerationHash)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
