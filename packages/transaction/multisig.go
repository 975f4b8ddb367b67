package transaction

import (
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/account"
	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/crypto"
	"github.com/proximax-storage/sirius-client-go/packages/schema"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
)

const (
	cosignatoryModificationSize = 1 + crypto.PublicKeySize
	maxModifications            = 0xff
)

var cosignatoryModificationSchema = schema.New(
	schema.Scalar("type", 1),
	schema.Array("cosignatoryPublicKey", 1),
)

var modifyMultisigSchema = commonSchema.Extend(
	schema.Scalar("minRemovalDelta", 1),
	schema.Scalar("minApprovalDelta", 1),
	schema.Scalar("numModifications", 1),
	schema.TableArray("modifications", cosignatoryModificationSchema),
)

// region ModifyMultisig ///////////////////////////////////////////////////////////////////////////////////////////////

// MultisigModificationType adds or removes a cosignatory.
type MultisigModificationType uint8

const (
	// AddCosignatory adds the account to the cosignatories.
	AddCosignatory MultisigModificationType = iota
	// RemoveCosignatory removes the account from the cosignatories.
	RemoveCosignatory
)

// CosignatoryModification is a single change of the cosignatory set.
type CosignatoryModification struct {
	Type        MultisigModificationType
	Cosignatory *account.PublicAccount
}

// ModifyMultisig converts an account into a multisig account or changes its cosignatories and thresholds.
type ModifyMultisig struct {
	Common
	MinApprovalDelta int8
	MinRemovalDelta  int8
	Modifications    []*CosignatoryModification
}

// NewModifyMultisig creates a ModifyMultisig. The deltas are applied to the current thresholds of the account.
func NewModifyMultisig(deadline *Deadline, minApprovalDelta, minRemovalDelta int8, modifications []*CosignatoryModification, networkType address.NetworkType) (*ModifyMultisig, error) {
	if len(modifications) > maxModifications {
		return nil, sdkerrors.InvalidInput("modifications", "at most %d modifications, got %d", maxModifications, len(modifications))
	}
	if len(modifications) == 0 && minApprovalDelta == 0 && minRemovalDelta == 0 {
		return nil, sdkerrors.InvalidInput("modifications", "nothing to modify")
	}
	for i, modification := range modifications {
		if modification == nil || modification.Cosignatory == nil {
			return nil, sdkerrors.InvalidInput("modifications", "modification %d has no cosignatory", i)
		}
		if modification.Type > RemoveCosignatory {
			return nil, sdkerrors.InvalidInput("modifications", "modification %d has unknown type %d", i, modification.Type)
		}
	}

	return &ModifyMultisig{
		Common:           newCommon(ModifyMultisigType, deadline, networkType),
		MinApprovalDelta: minApprovalDelta,
		MinRemovalDelta:  minRemovalDelta,
		Modifications:    modifications,
	}, nil
}

// Size returns the size of the wire payload in bytes.
func (m *ModifyMultisig) Size() int {
	return HeaderSize + 1 + 1 + 1 + cosignatoryModificationSize*len(m.Modifications)
}

// String returns a human-readable version of the ModifyMultisig.
func (m *ModifyMultisig) String() string {
	return stringify.Struct("ModifyMultisig",
		stringify.StructField("common", &m.Common),
		stringify.StructField("minApprovalDelta", m.MinApprovalDelta),
		stringify.StructField("minRemovalDelta", m.MinRemovalDelta),
		stringify.StructField("modifications", len(m.Modifications)),
	)
}

func (m *ModifyMultisig) schema() *schema.Schema {
	return modifyMultisigSchema
}

func (m *ModifyMultisig) buildRecord(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	modifications := make([]flatbuffers.UOffsetT, len(m.Modifications))
	for i, modification := range m.Modifications {
		cosignatory := builder.CreateByteVector(modification.Cosignatory.PublicKey.Bytes())

		builder.StartObject(2)
		builder.PrependUint8Slot(0, uint8(modification.Type), 0)
		builder.PrependUOffsetTSlot(1, cosignatory, 0)
		modifications[i] = builder.EndObject()
	}
	modificationsVector := tableVector(builder, modifications)
	header := m.createHeaderRecord(builder)

	m.startRecord(builder, header, m.Size(), 4)
	builder.PrependInt8Slot(headerFields+0, m.MinRemovalDelta, 0)
	builder.PrependInt8Slot(headerFields+1, m.MinApprovalDelta, 0)
	builder.PrependUint8Slot(headerFields+2, uint8(len(m.Modifications)), 0)
	builder.PrependUOffsetTSlot(headerFields+3, modificationsVector, 0)

	return builder.EndObject()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
