// Package transaction builds, serializes and signs the transactions of a Sirius chain.
//
// Serialization happens in two stages. Every variant first writes its fields into a tagged record (a flatbuffers
// table whose vtable slots are numbered in declaration order); the schema of the variant then flattens that record
// into the canonical wire payload. Only the schema decides the byte order on the wire.
package transaction

import (
	"github.com/cockroachdb/errors"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/account"
	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/crypto"
	"github.com/proximax-storage/sirius-client-go/packages/schema"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

// Sizes of the fields of the common header.
const (
	SizeSize      = 4
	SignatureSize = 64
	SignerSize    = 32
	VersionSize   = 4
	TypeSize      = 2
	MaxFeeSize    = 8
	DeadlineSize  = 8

	// HeaderSize is the size of the common header of a standalone transaction.
	HeaderSize = SizeSize + SignatureSize + SignerSize + VersionSize + TypeSize + MaxFeeSize + DeadlineSize

	// EmbeddedHeaderSize is the size of the header of a transaction embedded in an aggregate.
	EmbeddedHeaderSize = SizeSize + SignerSize + VersionSize + TypeSize

	// SignatureOffset is the position of the signature in a payload.
	SignatureOffset = SizeSize
	// SignerOffset is the position of the signer public key in a payload.
	SignerOffset = SignatureOffset + SignatureSize
	// VersionOffset is the position of the version field, the first signed byte of a payload.
	VersionOffset = SignerOffset + SignerSize
)

// headerFields is the number of vtable slots used by the common header; body fields start at this slot.
const headerFields = 7

var commonSchema = schema.New(
	schema.Scalar("size", SizeSize),
	schema.Array("signature", 1),
	schema.Array("signer", 1),
	schema.Scalar("version", VersionSize),
	schema.Scalar("type", TypeSize),
	schema.Array("maxFee", 4),
	schema.Array("deadline", 4),
)

// region Transaction //////////////////////////////////////////////////////////////////////////////////////////////////

// Transaction is one of the variants of this package.
type Transaction interface {
	// Header returns the common header of the transaction.
	Header() *Common

	// Size returns the size of the wire payload in bytes.
	Size() int

	// String returns a human-readable version of the transaction.
	String() string

	schema() *schema.Schema
	buildRecord(builder *flatbuffers.Builder) flatbuffers.UOffsetT
}

// Bytes returns the unsigned wire payload of tx: the signature is zero and the signer is the one set on the header
// (or zero).
func Bytes(tx Transaction) ([]byte, error) {
	if err := tx.Header().validate(); err != nil {
		return nil, err
	}

	builder := flatbuffers.NewBuilder(tx.Size())
	builder.Finish(tx.buildRecord(builder))

	payload, err := tx.schema().Serialize(builder.FinishedBytes())
	if err != nil {
		return nil, errors.Errorf("failed to serialize %s: %w", tx.Header().Type, err)
	}
	if len(payload) != tx.Size() {
		return nil, errors.Errorf("serialized %s has %d bytes instead of %d", tx.Header().Type, len(payload), tx.Size())
	}

	return payload, nil
}

// EmbeddedBytes returns the payload of tx in the layout used inside an aggregate: signature, max fee and deadline are
// dropped and the size is adjusted. The transaction must carry a signer.
func EmbeddedBytes(tx Transaction) ([]byte, error) {
	if tx.Header().Signer == nil {
		return nil, sdkerrors.InvalidAggregate("inner %s has no signer", tx.Header().Type)
	}
	if tx.Header().Type.IsAggregate() {
		return nil, sdkerrors.InvalidAggregate("aggregates can not be nested")
	}

	payload, err := Bytes(tx)
	if err != nil {
		return nil, err
	}

	return toEmbedded(payload), nil
}

// toEmbedded rewrites size:4 | signature:64 | signer:32 | version:4 | type:2 | maxFee:8 | deadline:8 | body into
// size:4 | signer:32 | version:4 | type:2 | body.
func toEmbedded(payload []byte) []byte {
	embedded := make([]byte, 0, len(payload)-SignatureSize-MaxFeeSize-DeadlineSize)
	embedded = appendUint32(embedded, uint32(cap(embedded)))
	embedded = append(embedded, payload[SignerOffset:VersionOffset+VersionSize+TypeSize]...)

	return append(embedded, payload[HeaderSize:]...)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Common ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Common is the header shared by all transactions.
type Common struct {
	Type        EntityType
	Version     EntityVersion
	NetworkType address.NetworkType
	MaxFee      types.Uint64
	Deadline    *Deadline

	// Signer is required for transactions that are embedded in an aggregate. Standalone transactions get the public
	// key of the signing account.
	Signer *account.PublicAccount

	// Signature and Info are only set on transactions read back from the network.
	Signature crypto.Signature
	Info      *Info
}

func newCommon(entityType EntityType, deadline *Deadline, networkType address.NetworkType) Common {
	return Common{
		Type:        entityType,
		Version:     entityType.Version(),
		NetworkType: networkType,
		Deadline:    deadline,
	}
}

// Header returns the Common header itself.
func (c *Common) Header() *Common {
	return c
}

// ToAggregate sets the signer of a transaction that is going to be embedded in an aggregate.
func (c *Common) ToAggregate(signer *account.PublicAccount) {
	c.Signer = signer
}

// SetMaxFee sets the maximum fee the signer is willing to pay.
func (c *Common) SetMaxFee(maxFee uint64) {
	c.MaxFee = types.NewUint64(maxFee)
}

// PackedVersion returns the version field as it appears on the wire: (network << 24) | version.
func (c *Common) PackedVersion() uint32 {
	return uint32(c.NetworkType)<<24 | uint32(c.Version)
}

// String returns a human-readable version of the Common header.
func (c *Common) String() string {
	return stringify.Struct("Common",
		stringify.StructField("type", c.Type.String()),
		stringify.StructField("version", c.Version),
		stringify.StructField("networkType", c.NetworkType.String()),
		stringify.StructField("maxFee", c.MaxFee.String()),
		stringify.StructField("deadline", c.Deadline),
		stringify.StructField("signer", c.Signer),
	)
}

func (c *Common) validate() error {
	if !c.NetworkType.IsValid() || c.NetworkType == address.AliasAddress {
		return sdkerrors.InvalidInput("networkType", "unsupported network %d", c.NetworkType)
	}
	if c.Deadline == nil {
		return sdkerrors.InvalidInput("deadline", "must not be nil")
	}

	return nil
}

// headerRecord holds the out-of-line fields of the header that must exist before the table is started.
type headerRecord struct {
	signature flatbuffers.UOffsetT
	signer    flatbuffers.UOffsetT
	maxFee    flatbuffers.UOffsetT
	deadline  flatbuffers.UOffsetT
}

func (c *Common) createHeaderRecord(builder *flatbuffers.Builder) headerRecord {
	signer := crypto.EmptyPublicKey
	if c.Signer != nil {
		signer = c.Signer.PublicKey
	}

	return headerRecord{
		signature: builder.CreateByteVector(c.Signature[:]),
		signer:    builder.CreateByteVector(signer[:]),
		maxFee:    uint64Vector(builder, c.MaxFee),
		deadline:  uint64Vector(builder, c.Deadline.Uint64()),
	}
}

// startRecord starts the table of a transaction with bodyFields fields and writes the header into it.
func (c *Common) startRecord(builder *flatbuffers.Builder, header headerRecord, size, bodyFields int) {
	builder.StartObject(headerFields + bodyFields)
	builder.PrependUint32Slot(0, uint32(size), 0)
	builder.PrependUOffsetTSlot(1, header.signature, 0)
	builder.PrependUOffsetTSlot(2, header.signer, 0)
	builder.PrependUint32Slot(3, c.PackedVersion(), 0)
	builder.PrependUint16Slot(4, uint16(c.Type), 0)
	builder.PrependUOffsetTSlot(5, header.maxFee, 0)
	builder.PrependUOffsetTSlot(6, header.deadline, 0)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region record helpers ///////////////////////////////////////////////////////////////////////////////////////////////

// uint64Vector writes a Uint64 as the [low, high] uint32 pair the schemas expect.
func uint64Vector(builder *flatbuffers.Builder, value types.Uint64) flatbuffers.UOffsetT {
	lowHigh := value.IntArray()
	builder.StartVector(4, 2, 4)
	builder.PrependUint32(lowHigh[1])
	builder.PrependUint32(lowHigh[0])

	return builder.EndVector(2)
}

// tableVector writes a vector of already finished tables, keeping their order.
func tableVector(builder *flatbuffers.Builder, tables []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	builder.StartVector(flatbuffers.SizeUOffsetT, len(tables), flatbuffers.SizeUOffsetT)
	for i := len(tables) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(tables[i])
	}

	return builder.EndVector(len(tables))
}

func appendUint32(bytes []byte, value uint32) []byte {
	return append(bytes, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
