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

var hashLockSchema = commonSchema.Extend(
	schema.Array("mosaicId", 4),
	schema.Array("mosaicAmount", 4),
	schema.Array("duration", 4),
	schema.Array("hash", 1),
)

// region HashLock /////////////////////////////////////////////////////////////////////////////////////////////////////

// HashLock locks funds as a deposit for a bonded aggregate. It has to be confirmed before the aggregate is announced.
type HashLock struct {
	Common
	Mosaic   *asset.Mosaic
	Duration types.Uint64
	Hash     types.Hash
}

// NewHashLock creates a HashLock for the signed bonded aggregate. duration is the number of blocks the lock lives.
func NewHashLock(deadline *Deadline, mosaic *asset.Mosaic, duration uint64, signed *SignedTransaction, networkType address.NetworkType) (*HashLock, error) {
	if mosaic == nil || mosaic.AssetID == nil {
		return nil, sdkerrors.InvalidInput("mosaic", "must not be nil")
	}
	if signed == nil {
		return nil, sdkerrors.InvalidInput("signedTransaction", "must not be nil")
	}
	if signed.EntityType() != AggregateBondedType {
		return nil, sdkerrors.InvalidInput("signedTransaction", "only %s transactions can be locked, got %s", AggregateBondedType, signed.EntityType())
	}

	return &HashLock{
		Common:   newCommon(HashLockType, deadline, networkType),
		Mosaic:   mosaic,
		Duration: types.NewUint64(duration),
		Hash:     signed.Hash(),
	}, nil
}

// Size returns the size of the wire payload in bytes.
func (h *HashLock) Size() int {
	return HeaderSize + 8 + 8 + 8 + types.HashLength
}

// String returns a human-readable version of the HashLock.
func (h *HashLock) String() string {
	return stringify.Struct("HashLock",
		stringify.StructField("common", &h.Common),
		stringify.StructField("mosaic", h.Mosaic),
		stringify.StructField("duration", h.Duration.String()),
		stringify.StructField("hash", h.Hash),
	)
}

func (h *HashLock) schema() *schema.Schema {
	return hashLockSchema
}

func (h *HashLock) buildRecord(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	mosaicID := uint64Vector(builder, h.Mosaic.AssetID.ID())
	amount := uint64Vector(builder, h.Mosaic.Amount)
	duration := uint64Vector(builder, h.Duration)
	hash := builder.CreateByteVector(h.Hash.Bytes())
	header := h.createHeaderRecord(builder)

	h.startRecord(builder, header, h.Size(), 4)
	builder.PrependUOffsetTSlot(headerFields+0, mosaicID, 0)
	builder.PrependUOffsetTSlot(headerFields+1, amount, 0)
	builder.PrependUOffsetTSlot(headerFields+2, duration, 0)
	builder.PrependUOffsetTSlot(headerFields+3, hash, 0)

	return builder.EndObject()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
