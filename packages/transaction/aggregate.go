package transaction

import (
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/schema"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
)

// CosignatureSize is the size of a cosignature record appended to an aggregate payload.
const CosignatureSize = SignerSize + SignatureSize

var aggregateSchema = commonSchema.Extend(
	schema.Scalar("transactionsSize", 4),
	schema.Array("transactions", 1),
)

// region Aggregate ////////////////////////////////////////////////////////////////////////////////////////////////////

// Aggregate bundles inner transactions that are confirmed together. A complete aggregate carries all cosignatures
// when it is announced; a bonded one collects them on the network after a HashLock was confirmed.
type Aggregate struct {
	Common
	InnerTransactions []Transaction

	// Cosignatures is only set on aggregates read back from the network.
	Cosignatures []*CosignatureSignedTransaction

	innerPayload []byte
}

// NewAggregateComplete creates a complete Aggregate. The inner transactions are owned by the aggregate afterwards.
func NewAggregateComplete(deadline *Deadline, innerTransactions []Transaction, networkType address.NetworkType) (*Aggregate, error) {
	return newAggregate(AggregateCompletedType, deadline, innerTransactions, networkType)
}

// NewAggregateBonded creates a bonded Aggregate. The inner transactions are owned by the aggregate afterwards.
func NewAggregateBonded(deadline *Deadline, innerTransactions []Transaction, networkType address.NetworkType) (*Aggregate, error) {
	return newAggregate(AggregateBondedType, deadline, innerTransactions, networkType)
}

func newAggregate(entityType EntityType, deadline *Deadline, innerTransactions []Transaction, networkType address.NetworkType) (*Aggregate, error) {
	if len(innerTransactions) == 0 {
		return nil, sdkerrors.InvalidAggregate("no inner transactions")
	}

	innerPayload := make([]byte, 0)
	for i, inner := range innerTransactions {
		if inner == nil {
			return nil, sdkerrors.InvalidAggregate("inner transaction %d is nil", i)
		}
		if inner.Header().Signer == nil || inner.Header().Signer.PublicKey.IsEmpty() {
			return nil, sdkerrors.InvalidAggregate("inner transaction %d (%s) has no signer", i, inner.Header().Type)
		}

		embedded, err := EmbeddedBytes(inner)
		if err != nil {
			return nil, err
		}
		innerPayload = append(innerPayload, embedded...)
	}

	return &Aggregate{
		Common:            newCommon(entityType, deadline, networkType),
		InnerTransactions: innerTransactions,
		innerPayload:      innerPayload,
	}, nil
}

// InnerPayload returns the concatenated embedded payloads of the inner transactions.
func (a *Aggregate) InnerPayload() []byte {
	return append([]byte{}, a.innerPayload...)
}

// Size returns the size of the wire payload in bytes, without cosignatures.
func (a *Aggregate) Size() int {
	return HeaderSize + 4 + len(a.innerPayload)
}

// String returns a human-readable version of the Aggregate.
func (a *Aggregate) String() string {
	return stringify.Struct("Aggregate",
		stringify.StructField("common", &a.Common),
		stringify.StructField("innerTransactions", a.InnerTransactions),
		stringify.StructField("cosignatures", len(a.Cosignatures)),
	)
}

func (a *Aggregate) schema() *schema.Schema {
	return aggregateSchema
}

func (a *Aggregate) buildRecord(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	transactions := builder.CreateByteVector(a.innerPayload)
	header := a.createHeaderRecord(builder)

	a.startRecord(builder, header, a.Size(), 2)
	builder.PrependUint32Slot(headerFields+0, uint32(len(a.innerPayload)), 0)
	builder.PrependUOffsetTSlot(headerFields+1, transactions, 0)

	return builder.EndObject()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
