package transaction

import (
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/account"
	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/asset"
	"github.com/proximax-storage/sirius-client-go/packages/crypto"
	"github.com/proximax-storage/sirius-client-go/packages/schema"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

// MaxMetadataValueSize is the largest metadata value the network accepts.
const MaxMetadataValueSize = 1024

var (
	accountMetadataSchema = commonSchema.Extend(
		schema.Array("targetKey", 1),
		schema.Array("scopedMetadataKey", 4),
		schema.Scalar("valueSizeDelta", 2),
		schema.Scalar("valueSize", 2),
		schema.Array("value", 1),
	)

	targetedMetadataSchema = commonSchema.Extend(
		schema.Array("targetKey", 1),
		schema.Array("scopedMetadataKey", 4),
		schema.Array("targetId", 4),
		schema.Scalar("valueSizeDelta", 2),
		schema.Scalar("valueSize", 2),
		schema.Array("value", 1),
	)
)

// region Metadata /////////////////////////////////////////////////////////////////////////////////////////////////////

// Metadata sets a value under a scoped key of an account, mosaic or namespace. The value on the wire is the XOR of
// the new and the previous value so that the node can apply it as a delta.
type Metadata struct {
	Common
	TargetPublicKey   *account.PublicAccount
	ScopedMetadataKey types.Uint64

	// TargetID is nil for account metadata.
	TargetID asset.AssetID

	ValueSizeDelta int16
	Value          []byte
	NewValue       string
	OldValue       string
}

// NewAccountMetadata creates a Metadata entry on the account of target.
func NewAccountMetadata(deadline *Deadline, target *account.PublicAccount, scopedKey uint64, newValue, oldValue string, networkType address.NetworkType) (*Metadata, error) {
	return newMetadata(AccountMetadataV2Type, deadline, target, nil, scopedKey, newValue, oldValue, networkType)
}

// NewMosaicMetadata creates a Metadata entry on a mosaic. owner is the creator of the mosaic.
func NewMosaicMetadata(deadline *Deadline, owner *account.PublicAccount, mosaicID *asset.MosaicID, scopedKey uint64, newValue, oldValue string, networkType address.NetworkType) (*Metadata, error) {
	if mosaicID == nil {
		return nil, sdkerrors.InvalidInput("mosaicID", "must not be nil")
	}

	return newMetadata(MosaicMetadataV2Type, deadline, owner, mosaicID, scopedKey, newValue, oldValue, networkType)
}

// NewNamespaceMetadata creates a Metadata entry on a namespace. owner is the owner of the namespace.
func NewNamespaceMetadata(deadline *Deadline, owner *account.PublicAccount, namespaceID *asset.NamespaceID, scopedKey uint64, newValue, oldValue string, networkType address.NetworkType) (*Metadata, error) {
	if namespaceID == nil || namespaceID.IsEmpty() {
		return nil, sdkerrors.InvalidInput("namespaceID", "must not be empty")
	}

	return newMetadata(NamespaceMetadataV2Type, deadline, owner, namespaceID, scopedKey, newValue, oldValue, networkType)
}

func newMetadata(entityType EntityType, deadline *Deadline, target *account.PublicAccount, targetID asset.AssetID, scopedKey uint64, newValue, oldValue string, networkType address.NetworkType) (*Metadata, error) {
	if target == nil {
		return nil, sdkerrors.InvalidInput("target", "must not be nil")
	}
	if len(newValue) > MaxMetadataValueSize || len(oldValue) > MaxMetadataValueSize {
		return nil, sdkerrors.InvalidInput("value", "metadata values are limited to %d bytes", MaxMetadataValueSize)
	}

	return &Metadata{
		Common:            newCommon(entityType, deadline, networkType),
		TargetPublicKey:   target,
		ScopedMetadataKey: types.NewUint64(scopedKey),
		TargetID:          targetID,
		ValueSizeDelta:    int16(len(newValue) - len(oldValue)),
		Value:             xorValues([]byte(newValue), []byte(oldValue)),
		NewValue:          newValue,
		OldValue:          oldValue,
	}, nil
}

// Size returns the size of the wire payload in bytes.
func (m *Metadata) Size() int {
	size := HeaderSize + crypto.PublicKeySize + 8 + 2 + 2 + len(m.Value)
	if m.TargetID != nil {
		size += 8
	}

	return size
}

// String returns a human-readable version of the Metadata.
func (m *Metadata) String() string {
	return stringify.Struct("Metadata",
		stringify.StructField("common", &m.Common),
		stringify.StructField("target", m.TargetPublicKey),
		stringify.StructField("scopedMetadataKey", m.ScopedMetadataKey.Hex()),
		stringify.StructField("targetID", m.TargetID),
		stringify.StructField("valueSizeDelta", m.ValueSizeDelta),
		stringify.StructField("newValue", m.NewValue),
		stringify.StructField("oldValue", m.OldValue),
	)
}

func (m *Metadata) schema() *schema.Schema {
	if m.TargetID == nil {
		return accountMetadataSchema
	}

	return targetedMetadataSchema
}

func (m *Metadata) buildRecord(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	targetKey := builder.CreateByteVector(m.TargetPublicKey.PublicKey.Bytes())
	scopedKey := uint64Vector(builder, m.ScopedMetadataKey)
	value := builder.CreateByteVector(m.Value)
	var targetID flatbuffers.UOffsetT
	if m.TargetID != nil {
		targetID = uint64Vector(builder, m.TargetID.ID())
	}
	header := m.createHeaderRecord(builder)

	slot := headerFields
	if m.TargetID == nil {
		m.startRecord(builder, header, m.Size(), 5)
	} else {
		m.startRecord(builder, header, m.Size(), 6)
	}
	builder.PrependUOffsetTSlot(slot, targetKey, 0)
	builder.PrependUOffsetTSlot(slot+1, scopedKey, 0)
	slot += 2
	if m.TargetID != nil {
		builder.PrependUOffsetTSlot(slot, targetID, 0)
		slot++
	}
	builder.PrependInt16Slot(slot, m.ValueSizeDelta, 0)
	builder.PrependUint16Slot(slot+1, uint16(len(m.Value)), 0)
	builder.PrependUOffsetTSlot(slot+2, value, 0)

	return builder.EndObject()
}

// xorValues returns newValue XOR oldValue, with the shorter one padded with zeros.
func xorValues(newValue, oldValue []byte) []byte {
	size := len(newValue)
	if len(oldValue) > size {
		size = len(oldValue)
	}

	result := make([]byte, size)
	copy(result, newValue)
	for i, b := range oldValue {
		result[i] ^= b
	}

	return result
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
