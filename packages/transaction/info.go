package transaction

import (
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/types"
)

// Info is the confirmation metadata the network attaches to a transaction. Hash and MerkleComponentHash are set for
// standalone transactions, the aggregate fields for inner transactions of an aggregate.
type Info struct {
	Height              types.Uint64
	Index               uint32
	ID                  string
	Hash                *types.Hash
	MerkleComponentHash *types.Hash
	AggregateHash       *types.Hash
	AggregateID         string
	UniqueAggregateHash *types.Hash
}

// String returns a human-readable version of the Info.
func (i *Info) String() string {
	return stringify.Struct("Info",
		stringify.StructField("height", i.Height.String()),
		stringify.StructField("index", i.Index),
		stringify.StructField("id", i.ID),
		stringify.StructField("hash", i.Hash),
		stringify.StructField("merkleComponentHash", i.MerkleComponentHash),
		stringify.StructField("aggregateHash", i.AggregateHash),
		stringify.StructField("aggregateID", i.AggregateID),
		stringify.StructField("uniqueAggregateHash", i.UniqueAggregateHash),
	)
}

// Status is the processing state of an announced transaction.
type Status struct {
	Group    string
	Status   string
	Hash     types.Hash
	Deadline *Deadline
	Height   types.Uint64
}

// IsSuccess reports whether the node accepted the transaction.
func (s *Status) IsSuccess() bool {
	return s.Status == "Success"
}

// IsConfirmed reports whether the transaction is included in a block.
func (s *Status) IsConfirmed() bool {
	return s.Group == "confirmed"
}

// String returns a human-readable version of the Status.
func (s *Status) String() string {
	return stringify.Struct("Status",
		stringify.StructField("group", s.Group),
		stringify.StructField("status", s.Status),
		stringify.StructField("hash", s.Hash),
		stringify.StructField("deadline", s.Deadline),
		stringify.StructField("height", s.Height.String()),
	)
}
