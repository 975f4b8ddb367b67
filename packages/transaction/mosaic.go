package transaction

import (
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/account"
	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/asset"
	"github.com/proximax-storage/sirius-client-go/packages/schema"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

const mosaicPropertyEntrySize = 1 + 8

var mosaicPropertySchema = schema.New(
	schema.Scalar("id", 1),
	schema.Array("value", 4),
)

var mosaicDefinitionSchema = commonSchema.Extend(
	schema.Scalar("nonce", asset.MosaicNonceLength),
	schema.Array("mosaicId", 4),
	schema.Scalar("numOptionalProperties", 1),
	schema.Scalar("flags", 1),
	schema.Scalar("divisibility", 1),
	schema.TableArray("optionalProperties", mosaicPropertySchema),
)

var mosaicSupplyChangeSchema = commonSchema.Extend(
	schema.Array("mosaicId", 4),
	schema.Scalar("direction", 1),
	schema.Array("delta", 4),
)

// region MosaicDefinition /////////////////////////////////////////////////////////////////////////////////////////////

// MosaicDefinition creates a new mosaic owned by the signer.
type MosaicDefinition struct {
	Common
	Nonce            asset.MosaicNonce
	MosaicID         *asset.MosaicID
	MosaicProperties *asset.MosaicProperties
}

// NewMosaicDefinition creates a MosaicDefinition. The id of the new mosaic is derived from nonce and owner, who must
// also be the signer of the transaction.
func NewMosaicDefinition(deadline *Deadline, nonce asset.MosaicNonce, owner *account.PublicAccount, properties *asset.MosaicProperties, networkType address.NetworkType) (*MosaicDefinition, error) {
	if owner == nil {
		return nil, sdkerrors.InvalidInput("owner", "must not be nil")
	}
	if properties == nil {
		return nil, sdkerrors.InvalidMosaic("missing properties")
	}
	if properties.Divisibility > asset.MaxDivisibility {
		return nil, sdkerrors.InvalidMosaic("divisibility %d is out of range [0, %d]", properties.Divisibility, asset.MaxDivisibility)
	}

	return &MosaicDefinition{
		Common:           newCommon(MosaicDefinitionType, deadline, networkType),
		Nonce:            nonce,
		MosaicID:         asset.MosaicIDFromNonceAndOwner(nonce, owner),
		MosaicProperties: properties,
	}, nil
}

// Size returns the size of the wire payload in bytes.
func (m *MosaicDefinition) Size() int {
	return HeaderSize + asset.MosaicNonceLength + 8 + 1 + 1 + 1 + mosaicPropertyEntrySize*len(m.MosaicProperties.OptionalProperties())
}

// String returns a human-readable version of the MosaicDefinition.
func (m *MosaicDefinition) String() string {
	return stringify.Struct("MosaicDefinition",
		stringify.StructField("common", &m.Common),
		stringify.StructField("nonce", m.Nonce.Uint32()),
		stringify.StructField("mosaicID", m.MosaicID),
		stringify.StructField("properties", m.MosaicProperties),
	)
}

func (m *MosaicDefinition) schema() *schema.Schema {
	return mosaicDefinitionSchema
}

func (m *MosaicDefinition) buildRecord(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	optionalProperties := m.MosaicProperties.OptionalProperties()
	properties := make([]flatbuffers.UOffsetT, len(optionalProperties))
	for i, property := range optionalProperties {
		value := uint64Vector(builder, property.Value)

		builder.StartObject(2)
		builder.PrependUint8Slot(0, uint8(property.ID), 0)
		builder.PrependUOffsetTSlot(1, value, 0)
		properties[i] = builder.EndObject()
	}
	propertiesVector := tableVector(builder, properties)
	mosaicID := uint64Vector(builder, m.MosaicID.ID())
	header := m.createHeaderRecord(builder)

	m.startRecord(builder, header, m.Size(), 6)
	builder.PrependUint32Slot(headerFields+0, m.Nonce.Uint32(), 0)
	builder.PrependUOffsetTSlot(headerFields+1, mosaicID, 0)
	builder.PrependUint8Slot(headerFields+2, uint8(len(optionalProperties)), 0)
	builder.PrependUint8Slot(headerFields+3, uint8(m.MosaicProperties.Flags()), 0)
	builder.PrependUint8Slot(headerFields+4, m.MosaicProperties.Divisibility, 0)
	builder.PrependUOffsetTSlot(headerFields+5, propertiesVector, 0)

	return builder.EndObject()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MosaicSupplyChange ///////////////////////////////////////////////////////////////////////////////////////////

// MosaicSupplyType is the direction of a supply change.
type MosaicSupplyType uint8

const (
	// Decrease removes units from the supply.
	Decrease MosaicSupplyType = iota
	// Increase adds units to the supply.
	Increase
)

// MosaicSupplyChange changes the supply of a mosaic with a mutable supply.
type MosaicSupplyChange struct {
	Common
	AssetID          asset.AssetID
	MosaicSupplyType MosaicSupplyType
	Delta            types.Uint64
}

// NewMosaicSupplyChange creates a MosaicSupplyChange. assetID may be a MosaicID or the NamespaceID of an alias.
func NewMosaicSupplyChange(deadline *Deadline, assetID asset.AssetID, supplyType MosaicSupplyType, delta uint64, networkType address.NetworkType) (*MosaicSupplyChange, error) {
	if assetID == nil {
		return nil, sdkerrors.InvalidInput("assetID", "must not be nil")
	}
	if supplyType > Increase {
		return nil, sdkerrors.InvalidInput("supplyType", "unknown direction %d", supplyType)
	}

	return &MosaicSupplyChange{
		Common:           newCommon(MosaicSupplyChangeType, deadline, networkType),
		AssetID:          assetID,
		MosaicSupplyType: supplyType,
		Delta:            types.NewUint64(delta),
	}, nil
}

// Size returns the size of the wire payload in bytes.
func (m *MosaicSupplyChange) Size() int {
	return HeaderSize + 8 + 1 + 8
}

// String returns a human-readable version of the MosaicSupplyChange.
func (m *MosaicSupplyChange) String() string {
	return stringify.Struct("MosaicSupplyChange",
		stringify.StructField("common", &m.Common),
		stringify.StructField("assetID", m.AssetID),
		stringify.StructField("supplyType", uint8(m.MosaicSupplyType)),
		stringify.StructField("delta", m.Delta.String()),
	)
}

func (m *MosaicSupplyChange) schema() *schema.Schema {
	return mosaicSupplyChangeSchema
}

func (m *MosaicSupplyChange) buildRecord(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	mosaicID := uint64Vector(builder, m.AssetID.ID())
	delta := uint64Vector(builder, m.Delta)
	header := m.createHeaderRecord(builder)

	m.startRecord(builder, header, m.Size(), 3)
	builder.PrependUOffsetTSlot(headerFields+0, mosaicID, 0)
	builder.PrependUint8Slot(headerFields+1, uint8(m.MosaicSupplyType), 0)
	builder.PrependUOffsetTSlot(headerFields+2, delta, 0)

	return builder.EndObject()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
