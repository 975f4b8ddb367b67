package transaction

import (
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/asset"
	"github.com/proximax-storage/sirius-client-go/packages/schema"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

// MaxRootNamespaceNameLength is the longest name a root namespace can have.
const MaxRootNamespaceNameLength = 16

var registerNamespaceSchema = commonSchema.Extend(
	schema.Scalar("namespaceType", 1),
	schema.Array("durationParentId", 4),
	schema.Array("namespaceId", 4),
	schema.Scalar("namespaceNameSize", 1),
	schema.Array("name", 1),
)

var addressAliasSchema = commonSchema.Extend(
	schema.Scalar("actionType", 1),
	schema.Array("namespaceId", 4),
	schema.Array("address", 1),
)

var mosaicAliasSchema = commonSchema.Extend(
	schema.Scalar("actionType", 1),
	schema.Array("namespaceId", 4),
	schema.Array("mosaicId", 4),
)

// region RegisterNamespace ////////////////////////////////////////////////////////////////////////////////////////////

// NamespaceType tells root namespaces from sub namespaces.
type NamespaceType uint8

const (
	// Root is a top level namespace that is rented for a duration.
	Root NamespaceType = iota
	// Sub is a namespace below an existing one.
	Sub
)

// RegisterNamespace rents a root namespace or creates a sub namespace.
type RegisterNamespace struct {
	Common
	NamespaceType NamespaceType
	NamespaceName string
	NamespaceID   *asset.NamespaceID

	// Duration is only used by root namespaces and ParentID only by sub namespaces.
	Duration types.Uint64
	ParentID *asset.NamespaceID
}

// NewRegisterRootNamespace creates a RegisterNamespace for a root namespace rented for duration blocks.
func NewRegisterRootNamespace(deadline *Deadline, name string, duration uint64, networkType address.NetworkType) (*RegisterNamespace, error) {
	if len(name) > MaxRootNamespaceNameLength {
		return nil, sdkerrors.InvalidNamespace("root name %q is longer than %d characters", name, MaxRootNamespaceNameLength)
	}

	namespaceID, err := asset.NamespaceIDFromNameAndParent(name, asset.EmptyNamespaceID)
	if err != nil {
		return nil, err
	}

	return &RegisterNamespace{
		Common:        newCommon(RegisterNamespaceType, deadline, networkType),
		NamespaceType: Root,
		NamespaceName: name,
		NamespaceID:   namespaceID,
		Duration:      types.NewUint64(duration),
	}, nil
}

// NewRegisterSubNamespace creates a RegisterNamespace for a namespace below parentID.
func NewRegisterSubNamespace(deadline *Deadline, name string, parentID *asset.NamespaceID, networkType address.NetworkType) (*RegisterNamespace, error) {
	if parentID == nil || parentID.IsEmpty() {
		return nil, sdkerrors.InvalidNamespace("sub namespace %q needs a parent", name)
	}

	namespaceID, err := asset.NamespaceIDFromNameAndParent(name, parentID)
	if err != nil {
		return nil, err
	}

	return &RegisterNamespace{
		Common:        newCommon(RegisterNamespaceType, deadline, networkType),
		NamespaceType: Sub,
		NamespaceName: name,
		NamespaceID:   namespaceID,
		ParentID:      parentID,
	}, nil
}

// Size returns the size of the wire payload in bytes.
func (r *RegisterNamespace) Size() int {
	return HeaderSize + 1 + 8 + 8 + 1 + len(r.NamespaceName)
}

// String returns a human-readable version of the RegisterNamespace.
func (r *RegisterNamespace) String() string {
	return stringify.Struct("RegisterNamespace",
		stringify.StructField("common", &r.Common),
		stringify.StructField("namespaceType", uint8(r.NamespaceType)),
		stringify.StructField("name", r.NamespaceName),
		stringify.StructField("namespaceID", r.NamespaceID),
		stringify.StructField("duration", r.Duration.String()),
		stringify.StructField("parentID", r.ParentID),
	)
}

func (r *RegisterNamespace) schema() *schema.Schema {
	return registerNamespaceSchema
}

func (r *RegisterNamespace) buildRecord(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	durationOrParent := r.Duration
	if r.NamespaceType == Sub {
		durationOrParent = r.ParentID.ID()
	}

	durationParentID := uint64Vector(builder, durationOrParent)
	namespaceID := uint64Vector(builder, r.NamespaceID.ID())
	name := builder.CreateByteVector([]byte(r.NamespaceName))
	header := r.createHeaderRecord(builder)

	r.startRecord(builder, header, r.Size(), 5)
	builder.PrependUint8Slot(headerFields+0, uint8(r.NamespaceType), 0)
	builder.PrependUOffsetTSlot(headerFields+1, durationParentID, 0)
	builder.PrependUOffsetTSlot(headerFields+2, namespaceID, 0)
	builder.PrependUint8Slot(headerFields+3, uint8(len(r.NamespaceName)), 0)
	builder.PrependUOffsetTSlot(headerFields+4, name, 0)

	return builder.EndObject()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region aliases //////////////////////////////////////////////////////////////////////////////////////////////////////

// AliasActionType links or unlinks an alias.
type AliasActionType uint8

const (
	// AliasLink points the namespace at the target.
	AliasLink AliasActionType = iota
	// AliasUnlink removes the link.
	AliasUnlink
)

// AddressAlias links a namespace to an address.
type AddressAlias struct {
	Common
	ActionType  AliasActionType
	NamespaceID *asset.NamespaceID
	Address     *address.Address
}

// NewAddressAlias creates an AddressAlias.
func NewAddressAlias(deadline *Deadline, target *address.Address, namespaceID *asset.NamespaceID, actionType AliasActionType, networkType address.NetworkType) (*AddressAlias, error) {
	if target == nil {
		return nil, sdkerrors.InvalidInput("address", "must not be nil")
	}
	if err := validateAlias(namespaceID, actionType); err != nil {
		return nil, err
	}

	return &AddressAlias{
		Common:      newCommon(AddressAliasType, deadline, networkType),
		ActionType:  actionType,
		NamespaceID: namespaceID,
		Address:     target,
	}, nil
}

// Size returns the size of the wire payload in bytes.
func (a *AddressAlias) Size() int {
	return HeaderSize + 1 + 8 + address.Length
}

// String returns a human-readable version of the AddressAlias.
func (a *AddressAlias) String() string {
	return stringify.Struct("AddressAlias",
		stringify.StructField("common", &a.Common),
		stringify.StructField("actionType", uint8(a.ActionType)),
		stringify.StructField("namespaceID", a.NamespaceID),
		stringify.StructField("address", a.Address),
	)
}

func (a *AddressAlias) schema() *schema.Schema {
	return addressAliasSchema
}

func (a *AddressAlias) buildRecord(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	namespaceID := uint64Vector(builder, a.NamespaceID.ID())
	target := builder.CreateByteVector(a.Address.Bytes())
	header := a.createHeaderRecord(builder)

	a.startRecord(builder, header, a.Size(), 3)
	builder.PrependUint8Slot(headerFields+0, uint8(a.ActionType), 0)
	builder.PrependUOffsetTSlot(headerFields+1, namespaceID, 0)
	builder.PrependUOffsetTSlot(headerFields+2, target, 0)

	return builder.EndObject()
}

// MosaicAlias links a namespace to a mosaic.
type MosaicAlias struct {
	Common
	ActionType  AliasActionType
	NamespaceID *asset.NamespaceID
	MosaicID    *asset.MosaicID
}

// NewMosaicAlias creates a MosaicAlias.
func NewMosaicAlias(deadline *Deadline, mosaicID *asset.MosaicID, namespaceID *asset.NamespaceID, actionType AliasActionType, networkType address.NetworkType) (*MosaicAlias, error) {
	if mosaicID == nil {
		return nil, sdkerrors.InvalidInput("mosaicID", "must not be nil")
	}
	if err := validateAlias(namespaceID, actionType); err != nil {
		return nil, err
	}

	return &MosaicAlias{
		Common:      newCommon(MosaicAliasType, deadline, networkType),
		ActionType:  actionType,
		NamespaceID: namespaceID,
		MosaicID:    mosaicID,
	}, nil
}

// Size returns the size of the wire payload in bytes.
func (m *MosaicAlias) Size() int {
	return HeaderSize + 1 + 8 + 8
}

// String returns a human-readable version of the MosaicAlias.
func (m *MosaicAlias) String() string {
	return stringify.Struct("MosaicAlias",
		stringify.StructField("common", &m.Common),
		stringify.StructField("actionType", uint8(m.ActionType)),
		stringify.StructField("namespaceID", m.NamespaceID),
		stringify.StructField("mosaicID", m.MosaicID),
	)
}

func (m *MosaicAlias) schema() *schema.Schema {
	return mosaicAliasSchema
}

func (m *MosaicAlias) buildRecord(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	namespaceID := uint64Vector(builder, m.NamespaceID.ID())
	mosaicID := uint64Vector(builder, m.MosaicID.ID())
	header := m.createHeaderRecord(builder)

	m.startRecord(builder, header, m.Size(), 3)
	builder.PrependUint8Slot(headerFields+0, uint8(m.ActionType), 0)
	builder.PrependUOffsetTSlot(headerFields+1, namespaceID, 0)
	builder.PrependUOffsetTSlot(headerFields+2, mosaicID, 0)

	return builder.EndObject()
}

func validateAlias(namespaceID *asset.NamespaceID, actionType AliasActionType) error {
	if namespaceID == nil || namespaceID.IsEmpty() {
		return sdkerrors.InvalidNamespace("alias needs a namespace")
	}
	if actionType > AliasUnlink {
		return sdkerrors.InvalidInput("actionType", "unknown alias action %d", actionType)
	}

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
