package jsonmodels

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/crypto"
	"github.com/proximax-storage/sirius-client-go/packages/transaction"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

// region TransactionInfo //////////////////////////////////////////////////////////////////////////////////////////////

// TransactionInfo represents the JSON model of a transaction.Info.
type TransactionInfo struct {
	Height              Uint64DTO `json:"height"`
	Index               uint32    `json:"index"`
	ID                  string    `json:"id"`
	Hash                string    `json:"hash,omitempty"`
	MerkleComponentHash string    `json:"merkleComponentHash,omitempty"`
	AggregateHash       string    `json:"aggregateHash,omitempty"`
	AggregateID         string    `json:"aggregateId,omitempty"`
	UniqueAggregateHash string    `json:"uniqueAggregateHash,omitempty"`
	ChannelName         string    `json:"channelName,omitempty"`
}

// ToInfo converts the DTO into a transaction.Info.
func (t *TransactionInfo) ToInfo() (info *transaction.Info, err error) {
	info = &transaction.Info{
		Height:      t.Height.ToUint64(),
		Index:       t.Index,
		ID:          t.ID,
		AggregateID: t.AggregateID,
	}

	if info.Hash, err = optionalHash("hash", t.Hash); err != nil {
		return nil, err
	}
	if info.MerkleComponentHash, err = optionalHash("merkleComponentHash", t.MerkleComponentHash); err != nil {
		return nil, err
	}
	if info.AggregateHash, err = optionalHash("aggregateHash", t.AggregateHash); err != nil {
		return nil, err
	}
	if info.UniqueAggregateHash, err = optionalHash("uniqueAggregateHash", t.UniqueAggregateHash); err != nil {
		return nil, err
	}

	return info, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Transaction //////////////////////////////////////////////////////////////////////////////////////////////////

// TransactionHeader represents the JSON model of the common header of a transaction. Version is signed because some
// nodes render the packed version as an int32.
type TransactionHeader struct {
	Signature string    `json:"signature"`
	Signer    string    `json:"signer"`
	Version   int64     `json:"version"`
	Type      uint16    `json:"type"`
	MaxFee    Uint64DTO `json:"maxFee"`
	Deadline  Uint64DTO `json:"deadline"`
}

// NetworkType returns the network of the transaction from the high byte of the packed version.
func (t *TransactionHeader) NetworkType() address.NetworkType {
	return address.NetworkType(uint32(t.Version) >> 24)
}

// EntityType returns the type of the transaction.
func (t *TransactionHeader) EntityType() transaction.EntityType {
	return transaction.EntityType(t.Type)
}

// Transaction represents the JSON model of a transaction as returned by /transaction/{hash} and the transaction
// channels. The body is kept raw, only the header is decoded.
type Transaction struct {
	Meta        TransactionInfo `json:"meta"`
	Transaction json.RawMessage `json:"transaction"`
}

// Header decodes the common header of the transaction.
func (t *Transaction) Header() (*TransactionHeader, error) {
	header := &TransactionHeader{}
	if err := json.Unmarshal(t.Transaction, header); err != nil {
		return nil, errors.Errorf("failed to parse transaction header: %w", err)
	}

	return header, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TransactionStatus ////////////////////////////////////////////////////////////////////////////////////////////

// TransactionStatus represents the JSON model of a transaction.Status.
type TransactionStatus struct {
	Group    string    `json:"group"`
	Status   string    `json:"status"`
	Hash     string    `json:"hash"`
	Deadline Uint64DTO `json:"deadline"`
	Height   Uint64DTO `json:"height"`
}

// ToStatus converts the DTO into a transaction.Status.
func (t *TransactionStatus) ToStatus() (*transaction.Status, error) {
	hash, err := types.HashFromHex(t.Hash)
	if err != nil {
		return nil, errors.Errorf("failed to parse status hash: %w", err)
	}

	return &transaction.Status{
		Group:    t.Group,
		Status:   t.Status,
		Hash:     hash,
		Deadline: transaction.DeadlineFromUint64(t.Deadline.ToUint64()),
		Height:   t.Height.ToUint64(),
	}, nil
}

// TransactionHashes represents the JSON model of a request for several transactions or statuses.
type TransactionHashes struct {
	Hashes []string `json:"hashes"`
}

// NewTransactionHashes returns a TransactionHashes from the given hashes.
func NewTransactionHashes(hashes ...types.Hash) *TransactionHashes {
	result := &TransactionHashes{Hashes: make([]string, len(hashes))}
	for i, hash := range hashes {
		result.Hashes[i] = hash.Hex()
	}

	return result
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Announce /////////////////////////////////////////////////////////////////////////////////////////////////////

// AnnounceTransaction represents the JSON model of a transaction announcement.
type AnnounceTransaction struct {
	Payload string `json:"payload"`
}

// NewAnnounceTransaction returns an AnnounceTransaction from the given transaction.SignedTransaction.
func NewAnnounceTransaction(signed *transaction.SignedTransaction) *AnnounceTransaction {
	return &AnnounceTransaction{Payload: signed.PayloadHex()}
}

// AnnounceResponse represents the JSON model of the reply to an announcement.
type AnnounceResponse struct {
	Message string `json:"message"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Cosignature //////////////////////////////////////////////////////////////////////////////////////////////////

// Cosignature represents the JSON model of a transaction.CosignatureSignedTransaction. It is both the body of a
// cosignature announcement and the message of the cosignature channel.
type Cosignature struct {
	ParentHash string `json:"parentHash"`
	Signature  string `json:"signature"`
	Signer     string `json:"signer"`
}

// NewCosignature returns a Cosignature from the given transaction.CosignatureSignedTransaction.
func NewCosignature(cosignature *transaction.CosignatureSignedTransaction) *Cosignature {
	return &Cosignature{
		ParentHash: cosignature.ParentHash.Hex(),
		Signature:  cosignature.Signature.String(),
		Signer:     cosignature.Signer.Hex(),
	}
}

// ToCosignature converts the DTO into a transaction.CosignatureSignedTransaction.
func (c *Cosignature) ToCosignature() (cosignature *transaction.CosignatureSignedTransaction, err error) {
	cosignature = &transaction.CosignatureSignedTransaction{}
	if cosignature.ParentHash, err = types.HashFromHex(c.ParentHash); err != nil {
		return nil, errors.Errorf("failed to parse parent hash: %w", err)
	}
	if cosignature.Signature, err = crypto.SignatureFromHex(c.Signature); err != nil {
		return nil, errors.Errorf("failed to parse signature: %w", err)
	}
	if cosignature.Signer, err = crypto.PublicKeyFromHex(c.Signer); err != nil {
		return nil, errors.Errorf("failed to parse signer: %w", err)
	}

	return cosignature, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

func optionalHash(field, hexString string) (*types.Hash, error) {
	if hexString == "" {
		return nil, nil
	}

	hash, err := types.HashFromHex(hexString)
	if err != nil {
		return nil, errors.Errorf("failed to parse %s: %w", field, err)
	}

	return &hash, nil
}
