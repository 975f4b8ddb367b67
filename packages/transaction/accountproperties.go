package transaction

import (
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/asset"
	"github.com/proximax-storage/sirius-client-go/packages/schema"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
)

const propertyModificationSize = 1 + 8

var mosaicPropertyModificationSchema = schema.New(
	schema.Scalar("modificationType", 1),
	schema.Array("value", 4),
)

var accountPropertiesMosaicSchema = commonSchema.Extend(
	schema.Scalar("propertyType", 1),
	schema.Scalar("modificationCount", 1),
	schema.TableArray("modifications", mosaicPropertyModificationSchema),
)

// region AccountPropertiesMosaic //////////////////////////////////////////////////////////////////////////////////////

// AccountPropertyType selects the account filter that is modified.
type AccountPropertyType uint8

const (
	// AllowMosaic only accepts incoming transfers of the listed mosaics.
	AllowMosaic AccountPropertyType = 0x02
	// BlockMosaic rejects incoming transfers of the listed mosaics.
	BlockMosaic AccountPropertyType = 0x80 | AllowMosaic
)

// PropertyModificationType adds or removes a filter value.
type PropertyModificationType uint8

const (
	// AddProperty adds the value to the filter.
	AddProperty PropertyModificationType = iota
	// RemoveProperty removes the value from the filter.
	RemoveProperty
)

// MosaicPropertyModification is a single change of a mosaic filter.
type MosaicPropertyModification struct {
	ModificationType PropertyModificationType
	AssetID          asset.AssetID
}

// AccountPropertiesMosaic changes the mosaic filter of the signer.
type AccountPropertiesMosaic struct {
	Common
	PropertyType  AccountPropertyType
	Modifications []*MosaicPropertyModification
}

// NewAccountPropertiesMosaic creates an AccountPropertiesMosaic.
func NewAccountPropertiesMosaic(deadline *Deadline, propertyType AccountPropertyType, modifications []*MosaicPropertyModification, networkType address.NetworkType) (*AccountPropertiesMosaic, error) {
	if propertyType != AllowMosaic && propertyType != BlockMosaic {
		return nil, sdkerrors.InvalidInput("propertyType", "%#02x is not a mosaic property", uint8(propertyType))
	}
	if len(modifications) == 0 || len(modifications) > maxModifications {
		return nil, sdkerrors.InvalidInput("modifications", "expected 1 to %d modifications, got %d", maxModifications, len(modifications))
	}
	for i, modification := range modifications {
		if modification == nil || modification.AssetID == nil {
			return nil, sdkerrors.InvalidInput("modifications", "modification %d has no mosaic", i)
		}
		if modification.ModificationType > RemoveProperty {
			return nil, sdkerrors.InvalidInput("modifications", "modification %d has unknown type %d", i, modification.ModificationType)
		}
	}

	return &AccountPropertiesMosaic{
		Common:        newCommon(AccountPropertiesMosaicType, deadline, networkType),
		PropertyType:  propertyType,
		Modifications: modifications,
	}, nil
}

// Size returns the size of the wire payload in bytes.
func (a *AccountPropertiesMosaic) Size() int {
	return HeaderSize + 1 + 1 + propertyModificationSize*len(a.Modifications)
}

// String returns a human-readable version of the AccountPropertiesMosaic.
func (a *AccountPropertiesMosaic) String() string {
	return stringify.Struct("AccountPropertiesMosaic",
		stringify.StructField("common", &a.Common),
		stringify.StructField("propertyType", uint8(a.PropertyType)),
		stringify.StructField("modifications", len(a.Modifications)),
	)
}

func (a *AccountPropertiesMosaic) schema() *schema.Schema {
	return accountPropertiesMosaicSchema
}

func (a *AccountPropertiesMosaic) buildRecord(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	modifications := make([]flatbuffers.UOffsetT, len(a.Modifications))
	for i, modification := range a.Modifications {
		value := uint64Vector(builder, modification.AssetID.ID())

		builder.StartObject(2)
		builder.PrependUint8Slot(0, uint8(modification.ModificationType), 0)
		builder.PrependUOffsetTSlot(1, value, 0)
		modifications[i] = builder.EndObject()
	}
	modificationsVector := tableVector(builder, modifications)
	header := a.createHeaderRecord(builder)

	a.startRecord(builder, header, a.Size(), 3)
	builder.PrependUint8Slot(headerFields+0, uint8(a.PropertyType), 0)
	builder.PrependUint8Slot(headerFields+1, uint8(len(a.Modifications)), 0)
	builder.PrependUOffsetTSlot(headerFields+2, modificationsVector, 0)

	return builder.EndObject()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
