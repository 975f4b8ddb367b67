package transaction

import (
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/account"
	"github.com/proximax-storage/sirius-client-go/packages/crypto"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

// region SignedTransaction ////////////////////////////////////////////////////////////////////////////////////////////

// SignedTransaction is a signed wire payload ready to be announced.
type SignedTransaction struct {
	entityType EntityType
	payload    []byte
	hash       types.Hash
}

// NewSignedTransaction restores a SignedTransaction from its hex payload and hash.
func NewSignedTransaction(entityType EntityType, payloadHex string, hash types.Hash) (*SignedTransaction, error) {
	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		return nil, sdkerrors.InvalidInput("payload", "malformed hex: %s", err)
	}
	if len(payload) < HeaderSize {
		return nil, sdkerrors.InvalidInput("payload", "expected at least %d bytes, got %d", HeaderSize, len(payload))
	}

	return &SignedTransaction{entityType: entityType, payload: payload, hash: hash}, nil
}

// EntityType returns the type of the signed transaction.
func (s *SignedTransaction) EntityType() EntityType {
	return s.entityType
}

// Payload returns a copy of the signed wire payload.
func (s *SignedTransaction) Payload() []byte {
	return append([]byte{}, s.payload...)
}

// PayloadHex returns the signed wire payload as uppercase hex, the form the REST API expects.
func (s *SignedTransaction) PayloadHex() string {
	return strings.ToUpper(hex.EncodeToString(s.payload))
}

// Hash returns the transaction hash.
func (s *SignedTransaction) Hash() types.Hash {
	return s.hash
}

// Signer returns the public key stored in the payload.
func (s *SignedTransaction) Signer() (signer crypto.PublicKey) {
	copy(signer[:], s.payload[SignerOffset:VersionOffset])

	return signer
}

// Signature returns the signature stored in the payload.
func (s *SignedTransaction) Signature() (signature crypto.Signature) {
	copy(signature[:], s.payload[SignatureOffset:SignerOffset])

	return signature
}

// Verify checks the signature of the payload against the signer key it contains.
func (s *SignedTransaction) Verify(generationHash types.Hash, scheme crypto.SignatureScheme) bool {
	if scheme == nil {
		scheme = crypto.SchemeEd25519SHA3
	}

	signed, err := signedPart(s.payload, s.entityType)
	if err != nil {
		return false
	}

	return scheme.Verify(s.Signer(), signingInput(signed, generationHash), s.Signature())
}

// String returns a human-readable version of the SignedTransaction.
func (s *SignedTransaction) String() string {
	return stringify.Struct("SignedTransaction",
		stringify.StructField("entityType", s.entityType.String()),
		stringify.StructField("payload", s.PayloadHex()),
		stringify.StructField("hash", s.hash),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region CosignatureSignedTransaction /////////////////////////////////////////////////////////////////////////////////

// CosignatureSignedTransaction is a cosignature of an aggregate that is announced on its own.
type CosignatureSignedTransaction struct {
	ParentHash types.Hash
	Signature  crypto.Signature
	Signer     crypto.PublicKey
}

// Verify checks the cosignature against the parent hash.
func (c *CosignatureSignedTransaction) Verify(scheme crypto.SignatureScheme) bool {
	if scheme == nil {
		scheme = crypto.SchemeEd25519SHA3
	}

	return scheme.Verify(c.Signer, c.ParentHash.Bytes(), c.Signature)
}

// String returns a human-readable version of the CosignatureSignedTransaction.
func (c *CosignatureSignedTransaction) String() string {
	return stringify.Struct("CosignatureSignedTransaction",
		stringify.StructField("parentHash", c.ParentHash),
		stringify.StructField("signature", c.Signature),
		stringify.StructField("signer", c.Signer),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region signing //////////////////////////////////////////////////////////////////////////////////////////////////////

// Sign serializes tx and signs it with signer for the network identified by generationHash. tx is not modified.
func Sign(tx Transaction, signer *account.Account, generationHash types.Hash) (*SignedTransaction, error) {
	if generationHash.IsEmpty() {
		return nil, errors.WithStack(sdkerrors.ErrMissingGenerationHash)
	}
	if signer == nil {
		return nil, sdkerrors.SigningFailed("no signer")
	}

	payload, err := Bytes(tx)
	if err != nil {
		return nil, err
	}

	signature := signer.SignData(signingInput(payload, generationHash))

	marshalUtil := marshalutil.New(len(payload))
	marshalUtil.WriteBytes(payload[:SignatureOffset])
	marshalUtil.WriteBytes(signature.Bytes())
	marshalUtil.WriteBytes(signer.PublicKey.Bytes())
	marshalUtil.WriteBytes(payload[VersionOffset:])
	signedPayload := marshalUtil.Bytes()

	return &SignedTransaction{
		entityType: tx.Header().Type,
		payload:    signedPayload,
		hash:       Hash(signedPayload, generationHash),
	}, nil
}

// SignWithCosignatories signs the aggregate with signer and appends the cosignatures of cosigners in the given order.
// The hash is the one of the aggregate without cosignatures.
func SignWithCosignatories(aggregate *Aggregate, signer *account.Account, cosigners []*account.Account, generationHash types.Hash) (*SignedTransaction, error) {
	signed, err := Sign(aggregate, signer, generationHash)
	if err != nil {
		return nil, err
	}

	size := len(signed.payload) + CosignatureSize*len(cosigners)
	marshalUtil := marshalutil.New(size)
	marshalUtil.WriteUint32(uint32(size))
	marshalUtil.WriteBytes(signed.payload[SizeSize:])
	for i, cosigner := range cosigners {
		if cosigner == nil {
			return nil, sdkerrors.SigningFailed("cosigner %d is nil", i)
		}

		marshalUtil.WriteBytes(cosigner.PublicKey.Bytes())
		marshalUtil.WriteBytes(cosigner.SignData(signed.hash.Bytes()).Bytes())
	}

	return &SignedTransaction{
		entityType: signed.entityType,
		payload:    marshalUtil.Bytes(),
		hash:       signed.hash,
	}, nil
}

// SignCosignature cosigns the aggregate with the given hash.
func SignCosignature(hash types.Hash, cosigner *account.Account) (*CosignatureSignedTransaction, error) {
	if hash.IsEmpty() {
		return nil, sdkerrors.SigningFailed("empty parent hash")
	}
	if cosigner == nil {
		return nil, sdkerrors.SigningFailed("no cosigner")
	}

	return &CosignatureSignedTransaction{
		ParentHash: hash,
		Signature:  cosigner.SignData(hash.Bytes()),
		Signer:     cosigner.PublicKey,
	}, nil
}

// Hash computes the hash of a signed payload:
// SHA3-256(signature R part || signer || generationHash || payload after the signer).
func Hash(payload []byte, generationHash types.Hash) types.Hash {
	return crypto.SHA3256(
		payload[SignatureOffset:SignatureOffset+SignatureSize/2],
		payload[SignerOffset:VersionOffset],
		generationHash.Bytes(),
		payload[VersionOffset:],
	)
}

// signingInput returns the bytes covered by the signature of a payload.
func signingInput(payload []byte, generationHash types.Hash) []byte {
	input := make([]byte, 0, types.HashLength+len(payload)-VersionOffset)
	input = append(input, generationHash[:]...)

	return append(input, payload[VersionOffset:]...)
}

// signedPart strips the cosignatures from an aggregate payload.
func signedPart(payload []byte, entityType EntityType) ([]byte, error) {
	if !entityType.IsAggregate() {
		return payload, nil
	}

	common, err := ParseCommon(payload)
	if err != nil {
		return nil, err
	}
	innerSize, err := aggregateInnerSize(payload)
	if err != nil {
		return nil, err
	}

	end := HeaderSize + 4 + innerSize
	if end > len(payload) || common.Size < uint32(end) {
		return nil, errors.Errorf("aggregate body of %d bytes exceeds payload of %d bytes", innerSize, len(payload))
	}

	return payload[:end], nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
