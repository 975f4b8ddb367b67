package transaction

import (
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/asset"
	"github.com/proximax-storage/sirius-client-go/packages/schema"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
)

const (
	recipientSize   = address.Length
	mosaicEntrySize = 8 + 8
	maxMosaics      = 0xff
)

var mosaicSchema = schema.New(
	schema.Array("id", 4),
	schema.Array("amount", 4),
)

var transferSchema = commonSchema.Extend(
	schema.Array("recipient", 1),
	schema.Scalar("messageSize", 2),
	schema.Scalar("numMosaics", 1),
	schema.Scalar("messageType", 1),
	schema.Array("messagePayload", 1),
	schema.TableArray("mosaics", mosaicSchema),
)

// region Transfer /////////////////////////////////////////////////////////////////////////////////////////////////////

// Transfer moves mosaics and/or a message to a recipient.
type Transfer struct {
	Common
	Recipient *address.Address
	Mosaics   []*asset.Mosaic
	Message   *Message
}

// NewTransfer creates a Transfer. The recipient may be a key-derived address or the alias address of a namespace.
// A nil message is sent as an empty plain message.
func NewTransfer(deadline *Deadline, recipient *address.Address, mosaics []*asset.Mosaic, message *Message, networkType address.NetworkType) (*Transfer, error) {
	if recipient == nil {
		return nil, sdkerrors.InvalidInput("recipient", "must not be nil")
	}
	if len(mosaics) > maxMosaics {
		return nil, sdkerrors.InvalidInput("mosaics", "at most %d mosaics can be transferred, got %d", maxMosaics, len(mosaics))
	}
	for i, mosaic := range mosaics {
		if mosaic == nil || mosaic.AssetID == nil {
			return nil, sdkerrors.InvalidInput("mosaics", "mosaic %d is empty", i)
		}
	}
	if message == nil {
		message = EmptyMessage()
	}
	if len(message.Payload) > MaxMessagePayloadSize {
		return nil, sdkerrors.InvalidInput("message", "payload of %d bytes exceeds %d", len(message.Payload), MaxMessagePayloadSize)
	}

	return &Transfer{
		Common:    newCommon(TransferType, deadline, networkType),
		Recipient: recipient,
		Mosaics:   mosaics,
		Message:   message,
	}, nil
}

// Size returns the size of the wire payload in bytes.
func (t *Transfer) Size() int {
	return HeaderSize + recipientSize + 2 + 1 + t.Message.Size() + mosaicEntrySize*len(t.Mosaics)
}

// String returns a human-readable version of the Transfer.
func (t *Transfer) String() string {
	return stringify.Struct("Transfer",
		stringify.StructField("common", &t.Common),
		stringify.StructField("recipient", t.Recipient),
		stringify.StructField("mosaics", t.Mosaics),
		stringify.StructField("message", t.Message),
	)
}

func (t *Transfer) schema() *schema.Schema {
	return transferSchema
}

func (t *Transfer) buildRecord(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	mosaics := make([]flatbuffers.UOffsetT, len(t.Mosaics))
	for i, mosaic := range t.Mosaics {
		id := uint64Vector(builder, mosaic.AssetID.ID())
		amount := uint64Vector(builder, mosaic.Amount)

		builder.StartObject(2)
		builder.PrependUOffsetTSlot(0, id, 0)
		builder.PrependUOffsetTSlot(1, amount, 0)
		mosaics[i] = builder.EndObject()
	}
	mosaicsVector := tableVector(builder, mosaics)
	recipient := builder.CreateByteVector(t.Recipient.Bytes())
	payload := builder.CreateByteVector(t.Message.Payload)
	header := t.createHeaderRecord(builder)

	t.startRecord(builder, header, t.Size(), 6)
	builder.PrependUOffsetTSlot(headerFields+0, recipient, 0)
	builder.PrependUint16Slot(headerFields+1, uint16(t.Message.Size()), 0)
	builder.PrependUint8Slot(headerFields+2, uint8(len(t.Mosaics)), 0)
	builder.PrependUint8Slot(headerFields+3, uint8(t.Message.Type), 0)
	builder.PrependUOffsetTSlot(headerFields+4, payload, 0)
	builder.PrependUOffsetTSlot(headerFields+5, mosaicsVector, 0)

	return builder.EndObject()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
